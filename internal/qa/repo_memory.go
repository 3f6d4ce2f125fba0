package qa

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	entries []QAEntry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create appends a history entry.
func (r *MemoryRepo) Create(ctx context.Context, entry QAEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

// ListByDocument returns a document's history for one user, newest first.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID, userID string) ([]QAEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]QAEntry, 0)
	for _, entry := range r.entries {
		if entry.DocumentID == documentID && entry.UserID == userID {
			out = append(out, entry)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// DeleteByDocument removes a document's history for one user.
func (r *MemoryRepo) DeleteByDocument(ctx context.Context, documentID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, entry := range r.entries {
		if entry.DocumentID == documentID && entry.UserID == userID {
			continue
		}
		kept = append(kept, entry)
	}
	r.entries = kept
	return nil
}
