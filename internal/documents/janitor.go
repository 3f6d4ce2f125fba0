package documents

import (
	"context"
	"time"

	"docqa-backend/internal/shared/storage/object"
	"docqa-backend/internal/shared/telemetry"
)

const janitorBatchSize = 50

// Janitor periodically removes stored files whose retention window has
// passed. Extracted text stays; only the original file is purged.
type Janitor struct {
	Repo     DocumentsRepo
	Store    object.ObjectStore
	Interval time.Duration

	now func() time.Time
}

func NewJanitor(repo DocumentsRepo, store object.ObjectStore, interval time.Duration) *Janitor {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &Janitor{
		Repo:     repo,
		Store:    store,
		Interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run sweeps on a ticker until the context is cancelled. An immediate sweep
// runs first so files expired while the server was down are caught on boot.
func (j *Janitor) Run(ctx context.Context) {
	j.Sweep(ctx)

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Sweep(ctx)
		}
	}
}

// Sweep purges one batch of expired files.
func (j *Janitor) Sweep(ctx context.Context) {
	expired, err := j.Repo.ListExpired(ctx, j.now(), janitorBatchSize)
	if err != nil {
		telemetry.Error("retention_sweep_failed", map[string]any{"error": err.Error()})
		return
	}

	for _, doc := range expired {
		if err := j.Store.Remove(ctx, doc.StorageKey); err != nil {
			telemetry.Error("retention_file_remove_failed", map[string]any{
				"documentId": doc.ID,
				"storageKey": doc.StorageKey,
				"error":      err.Error(),
			})
			continue
		}
		if err := j.Repo.ClearStorageKey(ctx, doc.ID); err != nil {
			telemetry.Error("retention_mark_failed", map[string]any{
				"documentId": doc.ID,
				"error":      err.Error(),
			})
			continue
		}
		telemetry.Info("retention_file_purged", map[string]any{
			"documentId": doc.ID,
			"storageKey": doc.StorageKey,
		})
	}
}
