package resumes

import (
	"time"

	"resume-builder/resume/model"
)

// Resume is a persisted résumé created from an import.
type Resume struct {
	ID               string
	UserID           string
	Title            string
	Content          model.ExtractedRecord
	SourceFileName   string
	SourceMimeType   string
	SourceStorageKey string
	ExtractedTextKey string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ImportInput is an uploaded document as received by the HTTP layer.
type ImportInput struct {
	UserID   string
	FileName string
	MimeType string
	Data     []byte
}
