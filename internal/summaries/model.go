package summaries

import "time"

// Summary is the stored AI summary of one document for one user.
type Summary struct {
	ID         string
	DocumentID string
	UserID     string
	Content    string
	CreatedAt  time.Time
}
