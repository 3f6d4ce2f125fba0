package qa

import "time"

// QAEntry is one question asked about a document and the answer produced.
type QAEntry struct {
	ID         string
	DocumentID string
	UserID     string
	Question   string
	Answer     string
	CreatedAt  time.Time
}
