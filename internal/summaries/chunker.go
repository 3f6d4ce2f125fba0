package summaries

import "strings"

// chunkWordCount is how many whitespace-separated words go into each chunk.
const chunkWordCount = 1000

// ChunkWords splits text into groups of chunkWordCount words. Words are
// whitespace-separated tokens; each chunk is the group rejoined with single
// spaces, so original spacing is not preserved. The last chunk may be short.
func ChunkWords(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+chunkWordCount-1)/chunkWordCount)
	for start := 0; start < len(words); start += chunkWordCount {
		end := start + chunkWordCount
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
