package summaries

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no summary exists for a document and user.
var ErrNotFound = errors.New("summary not found")

// Repo defines persistence operations for summaries.
type Repo interface {
	// Create inserts the summary unless one already exists for the same
	// document and user, in which case the existing summary is returned.
	Create(ctx context.Context, summary Summary) (Summary, error)
	GetByDocument(ctx context.Context, documentID, userID string) (Summary, error)
	DeleteByDocument(ctx context.Context, documentID, userID string) error
}
