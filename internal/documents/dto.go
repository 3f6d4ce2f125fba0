package documents

import "time"

// DocumentResponse is the wire shape for a document, extracted text included.
type DocumentResponse struct {
	ID         string     `json:"id"`
	FileName   string     `json:"fileName"`
	MimeType   string     `json:"mimeType"`
	SizeBytes  int64      `json:"sizeBytes"`
	Text       string     `json:"text"`
	PurgeAfter *time.Time `json:"purgeAfter,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:         doc.ID,
		FileName:   doc.FileName,
		MimeType:   doc.MimeType,
		SizeBytes:  doc.SizeBytes,
		Text:       doc.Text,
		PurgeAfter: doc.PurgeAfter,
		CreatedAt:  doc.CreatedAt,
	}
}

func toResponses(docs []Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toResponse(doc))
	}
	return out
}
