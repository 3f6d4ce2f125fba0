package summaries

import (
	"fmt"
	"strings"
	"testing"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

func TestChunkWordsSplitsAtThousandWords(t *testing.T) {
	text := words(2500)
	chunks := ChunkWords(text)

	if len(chunks) != 3 {
		t.Fatalf("len(chunks) = %d, want 3", len(chunks))
	}
	wantSizes := []int{1000, 1000, 500}
	for i, chunk := range chunks {
		if got := len(strings.Fields(chunk)); got != wantSizes[i] {
			t.Fatalf("chunk %d has %d words, want %d", i, got, wantSizes[i])
		}
	}

	// Joining the chunks back reproduces the word sequence.
	if strings.Join(chunks, " ") != text {
		t.Fatal("chunks do not reconstruct the original word sequence")
	}
}

func TestChunkWordsNormalizesWhitespace(t *testing.T) {
	chunks := ChunkWords("  alpha\t\tbeta\n\ngamma  ")
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0] != "alpha beta gamma" {
		t.Fatalf("chunk = %q", chunks[0])
	}
}

func TestChunkWordsEmptyText(t *testing.T) {
	if chunks := ChunkWords("   \n\t "); chunks != nil {
		t.Fatalf("chunks = %v, want nil", chunks)
	}
}

func TestChunkWordsExactBoundary(t *testing.T) {
	chunks := ChunkWords(words(1000))
	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
}
