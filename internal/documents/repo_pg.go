package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, file_name, storage_key, mime_type, size_bytes, text, purge_after, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var storageKey sql.NullString
	if doc.StorageKey != "" {
		storageKey = sql.NullString{String: doc.StorageKey, Valid: true}
	}
	var purgeAfter sql.NullTime
	if doc.PurgeAfter != nil {
		purgeAfter = sql.NullTime{Time: *doc.PurgeAfter, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		storageKey,
		doc.MimeType,
		doc.SizeBytes,
		doc.Text,
		purgeAfter,
		doc.CreatedAt,
	)
	return err
}

const docColumns = `id, user_id, file_name, storage_key, mime_type, size_bytes, text, purge_after, created_at`

// GetByID fetches a document by ID regardless of owner; callers enforce ownership.
func (r *PGRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	const query = `
SELECT ` + docColumns + `
FROM documents
WHERE id = $1
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser lists a user's documents, newest upload first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	const query = `
SELECT ` + docColumns + `
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Delete removes a document row scoped to its owner.
func (r *PGRepo) Delete(ctx context.Context, documentID, userID string) error {
	const query = `
DELETE FROM documents
WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, documentID, userID)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListExpired returns documents whose stored file is past its purge time.
func (r *PGRepo) ListExpired(ctx context.Context, now time.Time, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
SELECT ` + docColumns + `
FROM documents
WHERE storage_key IS NOT NULL AND purge_after IS NOT NULL AND purge_after <= $1
ORDER BY purge_after
LIMIT $2`

	rows, err := r.DB.QueryContext(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// ClearStorageKey marks a document's stored file as removed.
func (r *PGRepo) ClearStorageKey(ctx context.Context, documentID string) error {
	const query = `
UPDATE documents
SET storage_key = NULL
WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, documentID)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var storageKey sql.NullString
	var purgeAfter sql.NullTime
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&storageKey,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.Text,
		&purgeAfter,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if storageKey.Valid {
		doc.StorageKey = storageKey.String
	}
	if purgeAfter.Valid {
		doc.PurgeAfter = &purgeAfter.Time
	}
	return doc, nil
}
