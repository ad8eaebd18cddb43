package utils

import "strings"

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// ChunkTextDefault splits with a 1000 character window and 200 characters of overlap.
func ChunkTextDefault(text string) []string {
	return ChunkText(text, DefaultChunkSize, DefaultChunkOverlap)
}

// ChunkText splits text into overlapping windows of at most chunkSize characters.
// A window is shrunk to end right after the last '.', '!' or '?' found in its second half;
// without one it ends exactly at chunkSize. Each window after the first starts overlap
// characters before the previous end. Chunks are trimmed and empty ones dropped.
func ChunkText(text string, chunkSize int, overlap int) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	runes := []rune(text)
	total := len(runes)
	if total <= chunkSize {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < total {
		end := start + chunkSize
		if end >= total {
			end = total
		} else {
			end = sentenceBoundary(runes, start, end, chunkSize)
		}

		if chunk := strings.TrimSpace(string(runes[start:end])); chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == total {
			break
		}

		next := end - overlap
		if next <= start {
			// overlap too large for this window, move on without it
			next = end
		}
		start = next
	}

	return chunks
}

// sentenceBoundary scans backward from end for a sentence terminal, never going
// below start+chunkSize/2, and returns the index just past it.
func sentenceBoundary(runes []rune, start, end, chunkSize int) int {
	floor := start + chunkSize/2
	for i := end - 1; i > floor; i-- {
		if isSentenceTerminal(runes[i]) {
			return i + 1
		}
	}
	return end
}

func isSentenceTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
