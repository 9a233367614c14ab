package resumes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/extract"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
	"resume-builder/resume/parse"
)

const defaultTitle = "Imported résumé"

// Service runs the import flow: decode, extract, archive and persist.
type Service struct {
	Repo      Repo
	Store     object.Store
	Extractor *parse.Extractor
	Now       func() time.Time
	NewID     func() string
}

// NewService constructs a Service. store may be nil, in which case uploads
// are not archived.
func NewService(repo Repo, store object.Store, extractor *parse.Extractor) *Service {
	if extractor == nil {
		extractor = parse.Default()
	}
	return &Service{
		Repo:      repo,
		Store:     store,
		Extractor: extractor,
		Now:       func() time.Time { return time.Now().UTC() },
		NewID:     uuid.NewString,
	}
}

// Import decodes an uploaded document, extracts a record from it and
// persists a new resume. Decode failures are returned as *extract.DecodeError
// and nothing is stored.
func (s *Service) Import(ctx context.Context, in ImportInput) (Resume, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return Resume{}, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if len(in.Data) == 0 {
		return Resume{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	started := time.Now()
	metrics.IncImportStarted()

	mimeType := extract.ResolveMimeType(in.MimeType, in.FileName, in.Data)
	an, err := s.analyze(ctx, in, mimeType)
	if err != nil {
		return Resume{}, err
	}

	now := s.Now()
	res := Resume{
		ID:             s.NewID(),
		UserID:         in.UserID,
		Title:          titleFor(an.Record, in.FileName),
		Content:        an.Record,
		SourceFileName: in.FileName,
		SourceMimeType: mimeType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := model.Validate(res.Content); err != nil {
		metrics.IncImportFailed()
		return Resume{}, fmt.Errorf("validate record: %w", err)
	}

	if s.Store != nil {
		if err := s.archive(ctx, &res, in.Data, an.text); err != nil {
			metrics.IncImportFailed()
			return Resume{}, err
		}
	}

	if err := s.Repo.Create(ctx, res); err != nil {
		metrics.IncImportFailed()
		s.discardArchive(ctx, res)
		return Resume{}, fmt.Errorf("persist resume: %w", err)
	}

	elapsed := time.Since(started).Milliseconds()
	metrics.IncImportCompleted()
	metrics.ObserveImportDurationMs(float64(elapsed))
	counts := sectionCounts(an.Sections)
	for kind, n := range counts {
		metrics.AddExtractedSections(string(kind), n)
	}

	telemetry.Info("resume.import.completed", map[string]any{
		"resume_id":        res.ID,
		"user_id":          res.UserID,
		"mime_type":        mimeType,
		"bytes":            len(in.Data),
		"lines":            len(an.Lines),
		"sections":         len(an.Sections),
		"experience_count": len(res.Content.Experience),
		"education_count":  len(res.Content.Education),
		"skills_count":     len(res.Content.Skills),
		"duration_ms":      elapsed,
	})
	return res, nil
}

// Preview runs the same pipeline as Import without archiving or persisting.
func (s *Service) Preview(ctx context.Context, in ImportInput) (parse.Analysis, error) {
	if len(in.Data) == 0 {
		return parse.Analysis{}, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	mimeType := extract.ResolveMimeType(in.MimeType, in.FileName, in.Data)
	an, err := s.analyze(ctx, in, mimeType)
	if err != nil {
		return parse.Analysis{}, err
	}
	return an.Analysis, nil
}

// Get returns a resume owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (Resume, error) {
	if strings.TrimSpace(id) == "" {
		return Resume{}, fmt.Errorf("%w: resume id required", ErrInvalidInput)
	}
	if _, err := uuid.Parse(id); err != nil {
		return Resume{}, ErrNotFound
	}
	res, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Resume{}, err
	}
	if res.UserID != userID {
		return Resume{}, ErrForbidden
	}
	return res, nil
}

// List returns a user's resumes, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

type analysis struct {
	parse.Analysis
	text string
}

func (s *Service) analyze(ctx context.Context, in ImportInput, mimeType string) (analysis, error) {
	text, err := extract.Decode(ctx, in.Data, mimeType, in.FileName)
	if err != nil {
		var decodeErr *extract.DecodeError
		if errors.As(err, &decodeErr) {
			metrics.IncImportDecodeFailed()
			telemetry.Warn("resume.import.decode_failed", map[string]any{
				"user_id":   in.UserID,
				"file_name": in.FileName,
				"mime_type": mimeType,
				"error":     err,
			})
		} else {
			metrics.IncImportFailed()
		}
		return analysis{}, err
	}
	return analysis{Analysis: s.Extractor.Analyze(text), text: text}, nil
}

func (s *Service) archive(ctx context.Context, res *Resume, data []byte, text string) error {
	key, err := object.UploadKey(res.UserID, res.ID, res.SourceFileName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := s.Store.Put(ctx, key, res.SourceMimeType, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("archive upload: %w", err)
	}
	textKey := object.TextKey(key)
	if _, err := s.Store.Put(ctx, textKey, "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return fmt.Errorf("archive extracted text: %w", err)
	}
	res.SourceStorageKey = key
	res.ExtractedTextKey = textKey
	return nil
}

// discardArchive removes artifacts archived for a resume that was never
// persisted. Keys that cannot be removed are logged.
func (s *Service) discardArchive(ctx context.Context, res Resume) {
	if s.Store == nil {
		return
	}
	for _, key := range []string{res.ExtractedTextKey, res.SourceStorageKey} {
		if key == "" {
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("resume.import.orphaned_archive", map[string]any{
				"resume_id": res.ID,
				"user_id":   res.UserID,
				"key":       key,
				"error":     err,
			})
		}
	}
}

func titleFor(rec model.ExtractedRecord, fileName string) string {
	if name := strings.TrimSpace(rec.PersonalInfo.Name); name != "" {
		return name
	}
	base := path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	base = strings.TrimSpace(strings.TrimSuffix(base, path.Ext(base)))
	if base != "" && base != "." && base != "/" {
		return base
	}
	return defaultTitle
}

func sectionCounts(sections []parse.Section) map[parse.SectionKind]int {
	counts := make(map[parse.SectionKind]int)
	for _, s := range sections {
		if s.Kind == parse.SectionUnknown {
			continue
		}
		counts[s.Kind]++
	}
	return counts
}
