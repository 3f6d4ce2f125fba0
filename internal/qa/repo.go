package qa

import "context"

// Repo defines persistence operations for question history.
type Repo interface {
	Create(ctx context.Context, entry QAEntry) error
	// ListByDocument returns a document's history for one user, newest first.
	ListByDocument(ctx context.Context, documentID, userID string) ([]QAEntry, error)
	DeleteByDocument(ctx context.Context, documentID, userID string) error
}
