package summaries

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Summary // documentID + "\x00" + userID -> summary
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Summary),
	}
}

func memKey(documentID, userID string) string {
	return documentID + "\x00" + userID
}

// Create inserts the summary, or returns the existing one for the same
// document and user.
func (r *MemoryRepo) Create(ctx context.Context, summary Summary) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := memKey(summary.DocumentID, summary.UserID)
	if existing, ok := r.data[key]; ok {
		return existing, nil
	}
	r.data[key] = summary
	return summary, nil
}

// GetByDocument fetches the summary for a document and user.
func (r *MemoryRepo) GetByDocument(ctx context.Context, documentID, userID string) (Summary, error) {
	if err := ctx.Err(); err != nil {
		return Summary{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	summary, ok := r.data[memKey(documentID, userID)]
	if !ok {
		return Summary{}, ErrNotFound
	}
	return summary, nil
}

// DeleteByDocument removes the summary for a document and user, if any.
func (r *MemoryRepo) DeleteByDocument(ctx context.Context, documentID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, memKey(documentID, userID))
	return nil
}
