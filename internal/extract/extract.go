// Package extract turns an uploaded PDF or DOCX payload into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	mimeZip         = "application/zip"
	mimeOctetStream = "application/octet-stream"
)

// Decode extracts text from an in-memory payload. The declared type wins
// unless it is missing or generic, in which case the payload is sniffed.
// Every failure other than context cancellation is a *DecodeError.
func Decode(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	resolved := ResolveMimeType(mimeType, fileName, data)
	switch resolved {
	case MimePDF:
		return guard(resolved, fileName, func() (string, error) { return decodePDF(data) })
	case MimeDOCX:
		return guard(resolved, fileName, func() (string, error) { return decodeDOCX(data) })
	default:
		return "", unsupported(resolved, fileName)
	}
}

// Supported reports whether Decode can handle the resolved type.
func Supported(mimeType string) bool {
	return mimeType == MimePDF || mimeType == MimeDOCX
}

// guard runs a decoder and converts its errors and panics into a DecodeError.
// The PDF reader panics on some malformed cross-reference tables.
func guard(mimeType, fileName string, fn func() (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", decodeFailed(mimeType, fileName, fmt.Errorf("panic: %v", r))
		}
	}()
	text, err = fn()
	if err != nil {
		return "", decodeFailed(mimeType, fileName, err)
	}
	return text, nil
}

func decodePDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodeDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent())
}

// stripDocxXML keeps character data and turns paragraph, break and tab
// elements into the whitespace the line normalizer expects.
func stripDocxXML(raw string) (string, error) {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

// ResolveMimeType normalizes the declared type, sniffing the payload when the
// declaration is empty or generic.
func ResolveMimeType(mimeType string, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	switch clean {
	case "", mimeOctetStream, mimeZip:
	default:
		return clean
	}

	if len(data) > 0 {
		detected := mimetype.Detect(data)
		switch {
		case detected.Is(MimePDF):
			return MimePDF
		case detected.Is(MimeDOCX):
			return MimeDOCX
		case detected.Is(mimeZip):
			if mapOOXMLFromZip(data) == MimeDOCX {
				return MimeDOCX
			}
		}
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		if clean == "" || clean == mimeOctetStream {
			return MimePDF
		}
	case ".docx":
		return MimeDOCX
	}
	if clean == "" {
		return mimeOctetStream
	}
	return clean
}

func mapOOXMLFromZip(data []byte) string {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return MimeDOCX
		}
	}
	return ""
}
