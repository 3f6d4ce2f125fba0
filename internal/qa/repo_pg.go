package qa

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create appends a history entry. Repeat questions insert new rows.
func (r *PGRepo) Create(ctx context.Context, entry QAEntry) error {
	const query = `
INSERT INTO qa_history (id, document_id, user_id, question, answer, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.DocumentID,
		entry.UserID,
		entry.Question,
		entry.Answer,
		entry.CreatedAt,
	)
	return err
}

// ListByDocument returns a document's history for one user, newest first.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID, userID string) ([]QAEntry, error) {
	const query = `
SELECT id, document_id, user_id, question, answer, created_at
FROM qa_history
WHERE document_id = $1 AND user_id = $2
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, documentID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []QAEntry
	for rows.Next() {
		var entry QAEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.DocumentID,
			&entry.UserID,
			&entry.Question,
			&entry.Answer,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// DeleteByDocument removes a document's history for one user.
func (r *PGRepo) DeleteByDocument(ctx context.Context, documentID, userID string) error {
	const query = `
DELETE FROM qa_history
WHERE document_id = $1 AND user_id = $2`
	_, err := r.DB.ExecContext(ctx, query, documentID, userID)
	return err
}
