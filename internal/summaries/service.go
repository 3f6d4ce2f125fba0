package summaries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/llm"
	"docqa-backend/internal/shared/metrics"
	"docqa-backend/internal/shared/telemetry"
	"docqa-backend/internal/shared/util"
)

const (
	// chunkCharCeiling bounds how much of a chunk is sent to the model.
	chunkCharCeiling = 8000

	completionMaxTokens   = 500
	completionTemperature = 0.2

	systemInstruction = "You are a precise summarizer. Summarize the provided text in a few sentences, keeping only the most important points. Do not add information that is not in the text."
)

// DocumentSource loads a document while enforcing ownership.
type DocumentSource interface {
	GetOwned(ctx context.Context, userID, documentID string) (documents.Document, error)
}

// Service produces and serves per-document summaries.
type Service struct {
	Repo Repo
	Docs DocumentSource
	LLM  llm.Client

	now func() float64
}

func NewService(repo Repo, docs DocumentSource, client llm.Client) *Service {
	return &Service{
		Repo: repo,
		Docs: docs,
		LLM:  client,
		now:  metrics.NowMillis,
	}
}

// Summarize generates a summary for the document, or returns the stored one
// when it already exists. The text is split into 1000-word chunks, each chunk
// is summarized on its own, and the chunk summaries are joined in order. A
// failed chunk aborts the whole run with nothing saved.
func (s *Service) Summarize(ctx context.Context, userID, documentID string) (Summary, error) {
	doc, err := s.Docs.GetOwned(ctx, userID, documentID)
	if err != nil {
		return Summary{}, err
	}

	if existing, err := s.Repo.GetByDocument(ctx, documentID, userID); err == nil {
		return existing, nil
	} else if !errors.Is(err, ErrNotFound) {
		return Summary{}, err
	}

	metrics.IncSummarizeStarted()
	start := s.now()

	chunks := ChunkWords(doc.Text)
	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		out, err := s.LLM.Complete(ctx, llm.CompletionRequest{
			System:      systemInstruction,
			Prompt:      llm.Truncate(chunk, chunkCharCeiling),
			MaxTokens:   completionMaxTokens,
			Temperature: completionTemperature,
		})
		if err != nil {
			metrics.IncSummarizeFailed()
			telemetry.Error("summarize_chunk_failed", map[string]any{
				"documentId": documentID,
				"userHash":   util.HashUserKey(userID),
				"chunk":      i,
				"error":      err.Error(),
			})
			return Summary{}, fmt.Errorf("summarize chunk %d: %w", i, err)
		}
		parts = append(parts, strings.TrimSpace(out))
	}

	summary, err := s.Repo.Create(ctx, Summary{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		UserID:     userID,
		Content:    strings.Join(parts, " "),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		metrics.IncSummarizeFailed()
		return Summary{}, fmt.Errorf("save summary: %w", err)
	}

	metrics.IncSummarizeCompleted()
	metrics.ObserveSummarizeDurationMs(s.now() - start)
	telemetry.Info("summarize_complete", map[string]any{
		"documentId": documentID,
		"userHash":   util.HashUserKey(userID),
		"chunks":     len(chunks),
	})
	return summary, nil
}

// Get returns the stored summary for a document the caller owns.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Summary, error) {
	if _, err := s.Docs.GetOwned(ctx, userID, documentID); err != nil {
		return Summary{}, err
	}
	return s.Repo.GetByDocument(ctx, documentID, userID)
}
