// Package artifact owns the on-disk document workspace: the resume, cover
// letter, and ATS-optimized resume in both LaTeX source and compiled PDF
// form, plus the link cache, template preference, and background
// information files. The filesystem is the persistence layer; every write
// of an artifact is a whole-file overwrite followed by a compile, and both
// steps run under a per-artifact-kind mutex so concurrent tasks can never
// interleave writes to the same document.
package artifact
