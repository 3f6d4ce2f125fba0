package llm

import (
	"strings"
	"testing"
)

func TestTruncateAppendsMarker(t *testing.T) {
	text := strings.Repeat("a", 9000)
	got := Truncate(text, 8000)
	if len(got) != 8000+len(TruncationMarker) {
		t.Fatalf("expected %d chars, got %d", 8000+len(TruncationMarker), len(got))
	}
	if !strings.HasSuffix(got, TruncationMarker) {
		t.Fatal("expected truncation marker suffix")
	}
	if got[:8000] != text[:8000] {
		t.Fatal("expected prefix to be preserved")
	}
}

func TestTruncateLeavesShortTextAlone(t *testing.T) {
	if got := Truncate("short", 8000); got != "short" {
		t.Fatalf("expected unchanged text, got %q", got)
	}
	// Exactly at the ceiling is not truncated.
	exact := strings.Repeat("b", 100)
	if got := Truncate(exact, 100); got != exact {
		t.Fatalf("expected unchanged text at ceiling, got %d chars", len(got))
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	text := strings.Repeat("é", 50)
	got := Truncate(text, 10)
	runes := []rune(got)
	if len(runes) != 10+len(TruncationMarker) {
		t.Fatalf("expected 10 runes plus marker, got %d", len(runes))
	}
}
