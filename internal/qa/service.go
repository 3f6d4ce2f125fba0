package qa

import (
	"context"
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
	// contextCharCeiling bounds how much document text is sent with a question.
	// Larger than the summarize ceiling since the whole text goes in one call.
	contextCharCeiling = 12000

	completionMaxTokens   = 500
	completionTemperature = 0.2

	systemInstruction = "You answer questions strictly from the provided document text. If the answer is not in the text, say that the document does not contain it. Do not use outside knowledge."
)

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = fmt.Errorf("%w: question is required", documents.ErrInvalidInput)

// DocumentSource loads a document while enforcing ownership.
type DocumentSource interface {
	GetOwned(ctx context.Context, userID, documentID string) (documents.Document, error)
}

// Service answers questions about documents and keeps the history.
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

// Ask answers a question from the document's text with a single completion
// and appends the exchange to the document's history.
func (s *Service) Ask(ctx context.Context, userID, documentID, question string) (QAEntry, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return QAEntry{}, ErrEmptyQuestion
	}

	doc, err := s.Docs.GetOwned(ctx, userID, documentID)
	if err != nil {
		return QAEntry{}, err
	}

	metrics.IncAskStarted()
	start := s.now()

	prompt := fmt.Sprintf(
		"Document text:\n%s\n\nQuestion: %s",
		llm.Truncate(doc.Text, contextCharCeiling),
		question,
	)
	answer, err := s.LLM.Complete(ctx, llm.CompletionRequest{
		System:      systemInstruction,
		Prompt:      prompt,
		MaxTokens:   completionMaxTokens,
		Temperature: completionTemperature,
	})
	if err != nil {
		metrics.IncAskFailed()
		telemetry.Error("ask_failed", map[string]any{
			"documentId": documentID,
			"userHash":   util.HashUserKey(userID),
			"error":      err.Error(),
		})
		return QAEntry{}, fmt.Errorf("answer question: %w", err)
	}

	entry := QAEntry{
		ID:         uuid.NewString(),
		DocumentID: documentID,
		UserID:     userID,
		Question:   question,
		Answer:     strings.TrimSpace(answer),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, entry); err != nil {
		metrics.IncAskFailed()
		return QAEntry{}, fmt.Errorf("save qa entry: %w", err)
	}

	metrics.IncAskCompleted()
	metrics.ObserveAskDurationMs(s.now() - start)
	telemetry.Info("ask_complete", map[string]any{
		"documentId": documentID,
		"userHash":   util.HashUserKey(userID),
	})
	return entry, nil
}

// History returns the document's question history for the caller, newest first.
func (s *Service) History(ctx context.Context, userID, documentID string) ([]QAEntry, error) {
	if _, err := s.Docs.GetOwned(ctx, userID, documentID); err != nil {
		return nil, err
	}
	return s.Repo.ListByDocument(ctx, documentID, userID)
}
