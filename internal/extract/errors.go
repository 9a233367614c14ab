package extract

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned for payloads that are neither PDF nor DOCX.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrDecode is returned when a supported payload cannot be read.
	ErrDecode = errors.New("document could not be decoded")
)

// DecodeError is the only error the decode tier reports for a bad payload.
type DecodeError struct {
	MimeType string
	FileName string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q (%s): %v", e.FileName, e.MimeType, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func unsupported(mimeType, fileName string) error {
	return &DecodeError{MimeType: mimeType, FileName: fileName, Err: ErrUnsupportedType}
}

func decodeFailed(mimeType, fileName string, cause error) error {
	return &DecodeError{MimeType: mimeType, FileName: fileName, Err: fmt.Errorf("%w: %w", ErrDecode, cause)}
}
