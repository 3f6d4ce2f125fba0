package documents

import (
	"context"
	"time"
)

// DocumentsRepo defines persistence operations for documents.
type DocumentsRepo interface {
	Create(ctx context.Context, doc Document) error
	GetByID(ctx context.Context, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string) ([]Document, error)
	Delete(ctx context.Context, documentID, userID string) error
	// ListExpired returns documents whose stored file is past its purge time.
	ListExpired(ctx context.Context, now time.Time, limit int) ([]Document, error)
	// ClearStorageKey marks a document's stored file as removed.
	ClearStorageKey(ctx context.Context, documentID string) error
}
