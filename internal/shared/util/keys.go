// Package util builds the path segments object storage keys are made of.
package util

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
)

const maxFileNameRunes = 128

var errInvalidFileName = errors.New("invalid file name")

// HashUserKey maps a user ID (including "guest:" IDs) to a fixed-length hex
// segment so raw identities never appear in storage paths.
func HashUserKey(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// SanitizeFileName reduces an uploaded file name to a single safe path
// segment. Overlong names keep their tail so the extension survives.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errInvalidFileName
	}
	s := strings.TrimSpace(name)
	s = strings.NewReplacer("/", "_", "\\", "_").Replace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	if runes := []rune(s); len(runes) > maxFileNameRunes {
		s = string(runes[len(runes)-maxFileNameRunes:])
	}
	if s == "" {
		return "", errInvalidFileName
	}
	return s, nil
}
