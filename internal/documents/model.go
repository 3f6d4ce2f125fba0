package documents

import "time"

// Document represents an uploaded document owned by a user, with its
// extracted text stored verbatim.
type Document struct {
	ID         string
	UserID     string
	FileName   string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	Text       string
	PurgeAfter *time.Time
	CreatedAt  time.Time
}
