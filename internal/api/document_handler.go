package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/tailor-api/internal/api/shared"
	"github.com/phrazzld/tailor-api/internal/artifact"
)

// DocumentHandler serves the compiled documents and their LaTeX sources.
type DocumentHandler struct {
	store *artifact.Store
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(store *artifact.Store) *DocumentHandler {
	return &DocumentHandler{store: store}
}

// kindFromPath maps the kind URL parameter to an artifact kind.
func kindFromPath(r *http.Request) (artifact.Kind, bool) {
	switch chi.URLParam(r, "kind") {
	case "resume":
		return artifact.KindResume, true
	case "cover-letter":
		return artifact.KindCoverLetter, true
	case "ats-resume":
		return artifact.KindATSResume, true
	default:
		return "", false
	}
}

// Serve handles GET /api/documents/{kind} requests. The file_type query
// parameter selects the PDF (default) or the LaTeX source; download=true
// forces a file download instead of inline display.
func (h *DocumentHandler) Serve(w http.ResponseWriter, r *http.Request) {
	kind, ok := kindFromPath(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusNotFound, "Unknown document")
		return
	}

	h.serveKind(w, r, kind)
}

// ServeByQuery handles GET /api/serve_pdf requests, which pick the document
// with boolean query flags instead of a path segment: cover_letter=true or
// ats_resume=true, defaulting to the resume.
func (h *DocumentHandler) ServeByQuery(w http.ResponseWriter, r *http.Request) {
	kind := artifact.KindResume
	switch {
	case r.URL.Query().Get("cover_letter") == "true":
		kind = artifact.KindCoverLetter
	case r.URL.Query().Get("ats_resume") == "true":
		kind = artifact.KindATSResume
	}

	h.serveKind(w, r, kind)
}

func (h *DocumentHandler) serveKind(w http.ResponseWriter, r *http.Request, kind artifact.Kind) {
	fileType := r.URL.Query().Get("file_type")
	if fileType == "" {
		fileType = "pdf"
	}

	switch fileType {
	case "pdf":
		h.servePDF(w, r, kind)
	case "tex":
		h.serveTex(w, r, kind)
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "file_type must be pdf or tex")
	}
}

func (h *DocumentHandler) servePDF(w http.ResponseWriter, r *http.Request, kind artifact.Kind) {
	if !h.store.HasPDF(kind) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Document not found")
		return
	}

	path, err := h.store.PDFPath(kind)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	name, _ := kind.PDFFile()
	w.Header().Set("Content-Type", "application/pdf")
	if r.URL.Query().Get("download") == "true" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	} else {
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	}

	http.ServeFile(w, r, path)
}

func (h *DocumentHandler) serveTex(w http.ResponseWriter, r *http.Request, kind artifact.Kind) {
	content, err := h.store.ReadTex(kind)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	name, _ := kind.TexFile()
	w.Header().Set("Content-Type", "application/x-tex")
	if r.URL.Query().Get("download") == "true" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	}

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(content)); err != nil {
		// Client went away mid-response.
		return
	}
}
