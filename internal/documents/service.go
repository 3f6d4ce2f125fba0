package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqa-backend/internal/extract"
	"docqa-backend/internal/shared/storage/object"
	"docqa-backend/internal/shared/telemetry"
)

// SummaryPurger removes a document's summary when the document is deleted.
type SummaryPurger interface {
	DeleteByDocument(ctx context.Context, documentID, userID string) error
}

// HistoryPurger removes a document's question history when the document is deleted.
type HistoryPurger interface {
	DeleteByDocument(ctx context.Context, documentID, userID string) error
}

// Service handles document upload, listing, retrieval, and deletion.
type Service struct {
	Repo      DocumentsRepo
	Store     object.ObjectStore
	Summaries SummaryPurger
	History   HistoryPurger
	// Retention is how long the original file is kept after upload. The
	// extracted text is kept indefinitely.
	Retention time.Duration

	now func() time.Time
}

func NewService(repo DocumentsRepo, store object.ObjectStore, summaries SummaryPurger, history HistoryPurger, retention time.Duration) *Service {
	return &Service{
		Repo:      repo,
		Store:     store,
		Summaries: summaries,
		History:   history,
		Retention: retention,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upload validates the declared MIME type, stores the raw file, extracts its
// text, and persists the document row. The row is only written after
// extraction succeeds, so a failed upload leaves no partial document.
func (s *Service) Upload(ctx context.Context, userID, fileName, mimeType string, data []byte) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" || len(data) == 0 {
		return Document{}, ErrInvalidInput
	}
	if !extract.Supported(mimeType) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, extract.NormalizeMimeType(mimeType))
	}

	text, err := extract.Text(data, mimeType)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrExtractFailed, err)
	}

	storageKey, sizeBytes, _, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Document{}, fmt.Errorf("save file: %w", err)
	}

	now := s.now()
	purgeAfter := now.Add(s.Retention)
	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		FileName:   fileName,
		MimeType:   extract.NormalizeMimeType(mimeType),
		SizeBytes:  sizeBytes,
		StorageKey: storageKey,
		Text:       text,
		PurgeAfter: &purgeAfter,
		CreatedAt:  now,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		// Row creation failed; remove the orphaned file before bailing.
		if rmErr := s.Store.Remove(ctx, storageKey); rmErr != nil {
			telemetry.Error("upload_orphan_cleanup_failed", map[string]any{
				"storageKey": storageKey,
				"error":      rmErr.Error(),
			})
		}
		return Document{}, fmt.Errorf("create document: %w", err)
	}

	return doc, nil
}

// List returns the user's documents, newest upload first.
func (s *Service) List(ctx context.Context, userID string) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// GetOwned fetches a document and enforces ownership. A missing document
// yields ErrNotFound; a document owned by someone else yields ErrForbidden.
func (s *Service) GetOwned(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || documentID == "" {
		return Document{}, ErrInvalidInput
	}
	doc, err := s.Repo.GetByID(ctx, documentID)
	if err != nil {
		return Document{}, err
	}
	if doc.UserID != userID {
		return Document{}, ErrForbidden
	}
	return doc, nil
}

// Delete removes a document and everything derived from it: summary rows,
// question history, the stored file, then the document row itself.
func (s *Service) Delete(ctx context.Context, userID, documentID string) error {
	doc, err := s.GetOwned(ctx, userID, documentID)
	if err != nil {
		return err
	}

	if s.Summaries != nil {
		if err := s.Summaries.DeleteByDocument(ctx, documentID, userID); err != nil {
			return fmt.Errorf("delete summary: %w", err)
		}
	}
	if s.History != nil {
		if err := s.History.DeleteByDocument(ctx, documentID, userID); err != nil {
			return fmt.Errorf("delete qa history: %w", err)
		}
	}

	if doc.StorageKey != "" {
		if err := s.Store.Remove(ctx, doc.StorageKey); err != nil {
			// The file may already be gone (retention purge); log and keep going.
			telemetry.Error("document_file_remove_failed", map[string]any{
				"documentId": documentID,
				"storageKey": doc.StorageKey,
				"error":      err.Error(),
			})
		}
	}

	if err := s.Repo.Delete(ctx, documentID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			// Row vanished between the ownership check and the delete.
			return nil
		}
		return err
	}
	return nil
}
