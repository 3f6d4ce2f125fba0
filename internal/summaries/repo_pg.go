package summaries

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a summary. The unique constraint on (document_id, user_id)
// makes concurrent summarize calls converge on a single row; when the insert
// loses the race, the winner's row is returned.
func (r *PGRepo) Create(ctx context.Context, summary Summary) (Summary, error) {
	const query = `
INSERT INTO summaries (id, document_id, user_id, content, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (document_id, user_id) DO NOTHING`

	res, err := r.DB.ExecContext(
		ctx,
		query,
		summary.ID,
		summary.DocumentID,
		summary.UserID,
		summary.Content,
		summary.CreatedAt,
	)
	if err != nil {
		return Summary{}, err
	}
	affected, _ := res.RowsAffected()
	if affected > 0 {
		return summary, nil
	}
	return r.GetByDocument(ctx, summary.DocumentID, summary.UserID)
}

// GetByDocument fetches the summary for a document and user.
func (r *PGRepo) GetByDocument(ctx context.Context, documentID, userID string) (Summary, error) {
	const query = `
SELECT id, document_id, user_id, content, created_at
FROM summaries
WHERE document_id = $1 AND user_id = $2
LIMIT 1`

	var s Summary
	err := r.DB.QueryRowContext(ctx, query, documentID, userID).Scan(
		&s.ID,
		&s.DocumentID,
		&s.UserID,
		&s.Content,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Summary{}, ErrNotFound
		}
		return Summary{}, err
	}
	return s, nil
}

// DeleteByDocument removes the summary for a document and user, if any.
func (r *PGRepo) DeleteByDocument(ctx context.Context, documentID, userID string) error {
	const query = `
DELETE FROM summaries
WHERE document_id = $1 AND user_id = $2`
	_, err := r.DB.ExecContext(ctx, query, documentID, userID)
	return err
}
