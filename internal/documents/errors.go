package documents

import "errors"

var (
	ErrNotFound        = errors.New("document not found")
	ErrForbidden       = errors.New("document owned by another user")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrExtractFailed   = errors.New("text extraction failed")
)
