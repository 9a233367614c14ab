package object

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"resume-builder/internal/shared/util"
)

// ErrInvalidKey is returned for keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("invalid storage key")

// Store persists import artifacts (original uploads and their decoded text)
// under keys chosen by the caller.
type Store interface {
	Put(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// UploadKey returns the key an original upload is archived under:
// <hashed user>/<resume id>/<sanitized file name>.
func UploadKey(userID, resumeID, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(resumeID) == "" {
		return "", ErrInvalidKey
	}
	return path.Join(util.HashUserKey(userID), resumeID, name), nil
}

// TextKey returns the key of the decoded text stored next to an upload.
func TextKey(uploadKey string) string {
	return uploadKey + ".extracted.txt"
}

// CleanKey normalizes key to a slash-separated relative path.
func CleanKey(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}
	return clean, nil
}
