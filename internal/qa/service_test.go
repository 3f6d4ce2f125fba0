package qa

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"docqa-backend/internal/documents"
	"docqa-backend/internal/llm"
)

type fakeDocs struct {
	docs map[string]documents.Document // documentID -> document
}

func (f *fakeDocs) GetOwned(ctx context.Context, userID, documentID string) (documents.Document, error) {
	doc, ok := f.docs[documentID]
	if !ok {
		return documents.Document{}, documents.ErrNotFound
	}
	if doc.UserID != userID {
		return documents.Document{}, documents.ErrForbidden
	}
	return doc, nil
}

type fakeLLM struct {
	calls []llm.CompletionRequest
	reply string
	err   error
}

func (f *fakeLLM) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newAskFixture(text string) (*Service, *fakeLLM, *MemoryRepo) {
	docs := &fakeDocs{docs: map[string]documents.Document{
		"doc-1": {ID: "doc-1", UserID: "u1", Text: text},
	}}
	client := &fakeLLM{reply: "The answer."}
	repo := NewMemoryRepo()
	return NewService(repo, docs, client), client, repo
}

func TestAskAnswersAndRecordsHistory(t *testing.T) {
	svc, client, _ := newAskFixture("The sky is blue.")

	entry, err := svc.Ask(context.Background(), "u1", "doc-1", "What color is the sky?")
	if err != nil {
		t.Fatalf("Ask: %v", err)
	}
	if entry.Answer != "The answer." {
		t.Fatalf("answer = %q", entry.Answer)
	}
	if len(client.calls) != 1 {
		t.Fatalf("llm calls = %d", len(client.calls))
	}
	call := client.calls[0]
	if !strings.Contains(call.Prompt, "The sky is blue.") {
		t.Fatal("prompt missing document text")
	}
	if !strings.Contains(call.Prompt, "What color is the sky?") {
		t.Fatal("prompt missing question")
	}
	if call.System == "" {
		t.Fatal("missing system instruction")
	}

	history, err := svc.History(context.Background(), "u1", "doc-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 || history[0].Question != "What color is the sky?" {
		t.Fatalf("history = %+v", history)
	}
}

func TestAskTruncatesLongDocuments(t *testing.T) {
	long := strings.Repeat("x", 20000)
	svc, client, _ := newAskFixture(long)

	if _, err := svc.Ask(context.Background(), "u1", "doc-1", "anything?"); err != nil {
		t.Fatalf("Ask: %v", err)
	}
	prompt := client.calls[0].Prompt
	marker := strings.Repeat("x", contextCharCeiling) + llm.TruncationMarker
	if !strings.Contains(prompt, marker) {
		t.Fatal("document text not truncated at the context ceiling")
	}
	if utf8.RuneCountInString(prompt) > contextCharCeiling+200 {
		t.Fatalf("prompt unexpectedly large: %d runes", utf8.RuneCountInString(prompt))
	}
}

func TestAskRejectsBlankQuestion(t *testing.T) {
	svc, client, _ := newAskFixture("text")

	if _, err := svc.Ask(context.Background(), "u1", "doc-1", "   "); !errors.Is(err, documents.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
	if len(client.calls) != 0 {
		t.Fatal("blank question must not reach the model")
	}
}

func TestAskFailureSavesNothing(t *testing.T) {
	svc, client, repo := newAskFixture("text")
	client.err = errors.New("upstream exploded")

	if _, err := svc.Ask(context.Background(), "u1", "doc-1", "q?"); err == nil {
		t.Fatal("expected an error")
	}
	history, err := repo.ListByDocument(context.Background(), "doc-1", "u1")
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("failed ask left %d history rows", len(history))
	}
}

func TestAskPropagatesOwnershipErrors(t *testing.T) {
	svc, client, _ := newAskFixture("text")

	if _, err := svc.Ask(context.Background(), "u1", "missing", "q?"); !errors.Is(err, documents.ErrNotFound) {
		t.Fatalf("missing doc err = %v", err)
	}
	if _, err := svc.Ask(context.Background(), "intruder", "doc-1", "q?"); !errors.Is(err, documents.ErrForbidden) {
		t.Fatalf("foreign doc err = %v", err)
	}
	if len(client.calls) != 0 {
		t.Fatal("ownership failures must not reach the model")
	}
}

func TestHistoryNewestFirstAndRepeatQuestionsKept(t *testing.T) {
	svc, _, repo := newAskFixture("text")

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		entry := QAEntry{
			ID:         string(rune('a' + i)),
			DocumentID: "doc-1",
			UserID:     "u1",
			Question:   "same question?",
			Answer:     "answer",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(context.Background(), entry); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	history, err := svc.History(context.Background(), "u1", "doc-1")
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("len = %d, want 3 (repeat questions are kept)", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].CreatedAt.After(history[i-1].CreatedAt) {
			t.Fatal("history not sorted newest first")
		}
	}
}
