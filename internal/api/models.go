package api

import (
	"fmt"
	"strings"
)

// UpdateResumeRequest carries up to four independent resume edits. Each
// populated field becomes its own background task.
type UpdateResumeRequest struct {
	Links      []string `json:"links,omitempty"`
	Feedback   string   `json:"feedback,omitempty"`
	JobLink    string   `json:"joblink,omitempty"`
	TexContent string   `json:"tex_content,omitempty"`
}

// Validate requires at least one edit in the request.
func (r UpdateResumeRequest) Validate() error {
	if len(r.Links) == 0 &&
		strings.TrimSpace(r.Feedback) == "" &&
		strings.TrimSpace(r.JobLink) == "" &&
		strings.TrimSpace(r.TexContent) == "" {
		return fmt.Errorf("at least one of links, feedback, joblink, or tex_content is required")
	}
	return nil
}

// TaskSubmittedResponse acknowledges a batch of accepted background work.
// ActiveCount reports how many tasks the resume registry is tracking after
// the submission; TaskIDs maps each submitted edit to the ID a client can
// correlate over the event stream.
type TaskSubmittedResponse struct {
	Message        string            `json:"message"`
	TasksSubmitted int               `json:"tasks_submitted"`
	ActiveCount    int               `json:"active_count"`
	TaskIDs        map[string]string `json:"task_ids"`
}

// TaskAcceptedResponse acknowledges a single accepted background task.
type TaskAcceptedResponse struct {
	TaskID string `json:"task_id"`
}

// CoverLetterRequest asks for a cover letter targeting one posting. Either
// job_description or job_url must be present.
type CoverLetterRequest struct {
	JobDescription string `json:"job_description,omitempty"`
	Company        string `json:"company"`
	Title          string `json:"title"`
	JobURL         string `json:"job_url,omitempty"`
}

// Validate requires a posting source on top of the struct tags.
func (r CoverLetterRequest) Validate() error {
	if strings.TrimSpace(r.Company) == "" || strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("company and title are required")
	}
	if strings.TrimSpace(r.JobDescription) == "" && strings.TrimSpace(r.JobURL) == "" {
		return fmt.Errorf("either job_description or job_url is required")
	}
	return nil
}

// ATSResumeRequest asks for a resume variant optimized for one posting.
type ATSResumeRequest struct {
	JobDescription string `json:"job_description,omitempty"`
	JobURL         string `json:"job_url,omitempty"`
}

// Validate requires a posting source.
func (r ATSResumeRequest) Validate() error {
	if strings.TrimSpace(r.JobDescription) == "" && strings.TrimSpace(r.JobURL) == "" {
		return fmt.Errorf("either job_description or job_url is required")
	}
	return nil
}

// TexUpdateRequest replaces a document's LaTeX source directly.
type TexUpdateRequest struct {
	TexContent string `json:"tex_content" validate:"required,min=1"`
}

// JobSearchRequest describes a job board search.
type JobSearchRequest struct {
	JobTitle   string   `json:"job_title"             validate:"required,min=1"`
	Location   string   `json:"location,omitempty"`
	MaxResults int      `json:"max_results,omitempty" validate:"omitempty,min=1,max=100"`
	Sites      []string `json:"sites,omitempty"`
}

// SkillsResponse lists the skills extracted from the resume.
type SkillsResponse struct {
	Skills []string `json:"skills"`
}

// SettingsRequest updates workspace settings. All fields are optional;
// empty fields are left unchanged.
type SettingsRequest struct {
	TemplatePreference string `json:"template_preference,omitempty" validate:"omitempty,oneof=basic custom"`
	CustomTemplate     string `json:"custom_template,omitempty"`
	BackgroundInfo     string `json:"background_info,omitempty"`
	GeminiAPIKey       string `json:"gemini_api_key,omitempty"`
}

// SettingsResponse reports the current workspace settings. The API key is
// never echoed back; LLMConfigured reports whether one has been set.
type SettingsResponse struct {
	TemplatePreference string `json:"template_preference"`
	BackgroundInfo     string `json:"background_info"`
	LLMConfigured      bool   `json:"llm_configured"`
}
