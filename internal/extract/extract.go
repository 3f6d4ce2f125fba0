package extract

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

const (
	MimePDF  = "application/pdf"
	MimeText = "text/plain"
)

// ErrUnsupportedType is returned for MIME types other than PDF and plain text.
var ErrUnsupportedType = errors.New("unsupported file type")

// Supported reports whether a declared MIME type can be extracted.
func Supported(mimeType string) bool {
	switch NormalizeMimeType(mimeType) {
	case MimePDF, MimeText:
		return true
	default:
		return false
	}
}

// NormalizeMimeType strips parameters like charset and lowercases the type.
func NormalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}

// Text extracts plain text from an in-memory payload. PDF extraction is best
// effort; layout artifacts are not corrected.
func Text(data []byte, mimeType string) (string, error) {
	switch NormalizeMimeType(mimeType) {
	case MimePDF:
		return extractPDF(data)
	case MimeText:
		return extractPlainText(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, NormalizeMimeType(mimeType))
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

func extractPlainText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.New("text file is not valid UTF-8")
	}
	return string(data), nil
}
