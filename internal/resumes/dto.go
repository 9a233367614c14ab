package resumes

import (
	"time"

	"resume-builder/resume/model"
	"resume-builder/resume/parse"
)

// ResumeResponse is the outward-facing representation of a resume.
type ResumeResponse struct {
	ResumeID  string                `json:"resumeId"`
	Title     string                `json:"title"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
	Content   model.ExtractedRecord `json:"content"`
}

// ResumeListItem is a resume without its content, as returned by list.
type ResumeListItem struct {
	ResumeID       string    `json:"resumeId"`
	Title          string    `json:"title"`
	SourceFileName string    `json:"sourceFileName"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// SectionResponse describes one recognized span of the decoded text.
type SectionResponse struct {
	Kind      string `json:"kind"`
	StartLine int    `json:"startLine"`
	LineCount int    `json:"lineCount"`
}

// PreviewResponse is the extract-only result.
type PreviewResponse struct {
	Content   model.ExtractedRecord `json:"content"`
	LineCount int                   `json:"lineCount"`
	Sections  []SectionResponse     `json:"sections"`
}

func toResponse(res Resume) ResumeResponse {
	return ResumeResponse{
		ResumeID:  res.ID,
		Title:     res.Title,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
		Content:   res.Content.Normalize(),
	}
}

func toListItem(res Resume) ResumeListItem {
	return ResumeListItem{
		ResumeID:       res.ID,
		Title:          res.Title,
		SourceFileName: res.SourceFileName,
		CreatedAt:      res.CreatedAt,
		UpdatedAt:      res.UpdatedAt,
	}
}

func toPreview(an parse.Analysis) PreviewResponse {
	sections := make([]SectionResponse, 0, len(an.Sections))
	for _, s := range an.Sections {
		sections = append(sections, SectionResponse{
			Kind:      string(s.Kind),
			StartLine: s.StartLine,
			LineCount: len(s.Lines),
		})
	}
	return PreviewResponse{
		Content:   an.Record.Normalize(),
		LineCount: len(an.Lines),
		Sections:  sections,
	}
}
