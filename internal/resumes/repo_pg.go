package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, title, content, source_file_name, source_mime_type, source_storage_key, extracted_text_key, created_at, updated_at`

// Create inserts a new resume. Content is stored as jsonb.
func (r *PGRepo) Create(ctx context.Context, res Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    title,
    content,
    source_file_name,
    source_mime_type,
    source_storage_key,
    extracted_text_key,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	content, err := json.Marshal(res.Content.Normalize())
	if err != nil {
		return fmt.Errorf("marshal resume content: %w", err)
	}

	_, err = r.DB.ExecContext(
		ctx,
		query,
		res.ID,
		res.UserID,
		res.Title,
		content,
		res.SourceFileName,
		res.SourceMimeType,
		nullString(res.SourceStorageKey),
		nullString(res.ExtractedTextKey),
		res.CreatedAt,
		res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume %s: %w", res.ID, err)
	}
	return nil
}

// GetByID fetches a resume by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1 AND deleted_at IS NULL LIMIT 1`
	res, err := scanResume(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return res, nil
}

// ListByUser lists a user's resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Resume, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	query := `SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var res Resume
	var content []byte
	var storageKey sql.NullString
	var textKey sql.NullString
	if err := row.Scan(
		&res.ID,
		&res.UserID,
		&res.Title,
		&content,
		&res.SourceFileName,
		&res.SourceMimeType,
		&storageKey,
		&textKey,
		&res.CreatedAt,
		&res.UpdatedAt,
	); err != nil {
		return Resume{}, err
	}
	if len(content) > 0 {
		if err := json.Unmarshal(content, &res.Content); err != nil {
			return Resume{}, fmt.Errorf("decode resume %s content: %w", res.ID, err)
		}
	}
	res.Content = res.Content.Normalize()
	res.SourceStorageKey = storageKey.String
	res.ExtractedTextKey = textKey.String
	return res, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
