package generation

import (
	"fmt"
	"strings"
)

// Shared resume-writing guidance included in every resume rewrite prompt.
const resumeGuidance = `Resume language should be:
- Specific rather than general
- Active rather than passive
- Written to express not impress
- Fact-based (quantify and qualify)
- Written for people who scan quickly

Resume writing DOs:
- Be consistent in format and content
- Make it easy to read and follow, balancing white space
- Use consistent spacing, underlining, italics, bold, and capitalization for emphasis
- List headings (such as Experience) in order of importance
- Within headings, list information in reverse chronological order (most recent first)
- Avoid information gaps such as a missing summer`

const latexRules = `- Maintain the document structure and formatting consistency.
- Avoid duplication; enrich or update existing entries if appropriate.
- Exclude irrelevant, redundant, or informal content.
- Ensure the output is valid, standalone, and compilable LaTeX code.
- Avoid premature pagebreaks and use a latex page efficiently and in a clean way.
- Return only the updated LaTeX code, no explanations or extra text.`

// BuildAppendPrompt asks the model to fold crawled profile information into
// the current resume source.
func BuildAppendPrompt(info, currentCode string) string {
	return fmt.Sprintf(`You are an AI assistant specialized in generating LaTeX resumes.

Task:
Update the LaTeX resume provided below by incorporating relevant and valuable details from the additional information.

Instructions:
- Extract important content such as work experience, education, skills, certifications, interests, awards, hobbies and projects.
- Integrate new information into existing sections wherever applicable.
%s

%s

### Additional Information:
%s

### Current LaTeX Resume:
%s
`, latexRules, resumeGuidance, info, currentCode)
}

// BuildEditingPrompt asks the model to apply user feedback to the resume.
func BuildEditingPrompt(feedback, currentCode string) string {
	return fmt.Sprintf(`You are an AI assistant specialized in generating LaTeX resumes.

Task:
Make changes to the LaTeX resume provided below as per the feedback given below.

Instructions:
%s

%s

### Feedback:
%s

### Current LaTeX Resume Code:
%s
`, latexRules, resumeGuidance, feedback, currentCode)
}

// BuildJobOptimizePrompt asks the model to tune the resume against a job
// description so it passes applicant tracking systems. The model must only
// rearrange and rephrase what the resume already contains.
func BuildJobOptimizePrompt(jobDescription, currentCode string) string {
	return fmt.Sprintf(`You are an AI assistant specialized in generating LaTeX resume code.

Task:
Make changes to the LaTeX resume provided below to optimize the given resume for the given job description. Optimize such that the resume passes the Applicant Tracking System.

Instructions:
- You are optimizing the resume for the job applicant based on their existing experience only given in the current resume.
- Do not write any false or non-valid or hypothetical content.
%s

Some tips:
- Use common names for your section headers (Education, Work Experience, Leadership, Skills).
- Use keywords and exact phrases from the job description throughout your resume.
- Do not include any false information. Your sample space is what is given in the Current LaTeX Resume.
- A summary statement utilizing keywords can be helpful.
- Include dates wherever possible.

### Job Description:
%s

### Current LaTeX Resume:
%s
`, latexRules, jobDescription, currentCode)
}

// BuildCoverLetterPrompt asks the model to draft a one-page LaTeX cover
// letter for a specific posting, grounded in the resume and any background
// information the candidate has provided.
func BuildCoverLetterPrompt(jobDescription, company, title, resumeCode, background string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `You are an AI assistant specialized in writing professional cover letters in LaTeX.

Task:
Write a one-page cover letter for the position of %s at %s, tailored to the job description below and grounded strictly in the candidate's resume.

Instructions:
- Address the specific requirements in the job description using matching experience from the resume.
- Keep a confident, concrete tone; no filler phrases.
- Do not invent experience, employers, or dates that are not in the resume.
- Ensure the output is valid, standalone, and compilable LaTeX code.
- Return only the LaTeX code, no explanations or extra text.

### Job Description:
%s

### Candidate Resume (LaTeX):
%s
`, title, company, jobDescription, resumeCode)

	if background != "" {
		fmt.Fprintf(&b, "\n### Additional Background Information:\n%s\n", background)
	}

	return b.String()
}
