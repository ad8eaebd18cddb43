package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText_ShortInput(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: nil},
		{name: "whitespace only", text: "  \n\t ", want: nil},
		{name: "shorter than window", text: "A short lesson note.", want: []string{"A short lesson note."}},
		{name: "returned verbatim", text: "  padded  ", want: []string{"  padded  "}},
		{name: "exactly window size", text: strings.Repeat("x", 1000), want: []string{strings.Repeat("x", 1000)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChunkTextDefault(tt.text))
		})
	}
}

func TestChunkText_NoTerminalsUsesFullWindow(t *testing.T) {
	text := strings.Repeat("a", 3000)

	chunks := ChunkText(text, 1000, 200)

	require.Len(t, chunks, 4)
	assert.Len(t, chunks[0], 1000)
	assert.Len(t, chunks[1], 1000)
	assert.Len(t, chunks[2], 1000)
	assert.Len(t, chunks[3], 600)
}

func TestChunkText_EndsAtSentenceTerminal(t *testing.T) {
	text := strings.Repeat("a", 700) + "." + strings.Repeat("b", 800)

	chunks := ChunkText(text, 1000, 200)

	require.NotEmpty(t, chunks)
	assert.Equal(t, strings.Repeat("a", 700)+".", chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], strings.Repeat("a", 199)+"."))
}

func TestChunkText_IgnoresTerminalInFirstHalf(t *testing.T) {
	text := strings.Repeat("a", 300) + "!" + strings.Repeat("a", 1199)

	chunks := ChunkText(text, 1000, 200)

	require.NotEmpty(t, chunks)
	assert.Len(t, chunks[0], 1000)
}

func TestChunkText_Deterministic(t *testing.T) {
	text := strings.Repeat("The class reads a poem. Students discuss imagery! Why does it matter? ", 80)

	first := ChunkText(text, 1000, 200)
	second := ChunkText(text, 1000, 200)

	assert.Equal(t, first, second)
}

func TestChunkText_CoverageWithExactOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghijk.", 250)
	overlap := 200

	chunks := ChunkText(text, 1000, overlap)
	require.GreaterOrEqual(t, len(chunks), 3)

	rebuilt := chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		require.GreaterOrEqual(t, len(cur), overlap)
		assert.Equal(t, prev[len(prev)-overlap:], cur[:overlap], "chunk %d overlap", i)
		rebuilt += cur[overlap:]
	}
	assert.Equal(t, text, rebuilt)
}

func TestChunkText_SizeBounds(t *testing.T) {
	text := strings.Repeat("Fractions name parts of a whole. Halves and quarters are common! Can you spot one? ", 60)
	size := 1000

	chunks := ChunkText(text, size, 200)
	require.Greater(t, len(chunks), 1)

	for i, c := range chunks {
		n := utf8.RuneCountInString(c)
		assert.LessOrEqual(t, n, size, "chunk %d too long", i)
		if i < len(chunks)-1 {
			// trimming can remove the single space that follows a terminal
			assert.GreaterOrEqual(t, n, size/2-1, "chunk %d too short", i)
		}
	}
}

func TestChunkText_CountsRunesNotBytes(t *testing.T) {
	text := strings.Repeat("é", 1500)

	chunks := ChunkText(text, 1000, 200)

	require.Len(t, chunks, 2)
	assert.Equal(t, 1000, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 700, utf8.RuneCountInString(chunks[1]))
}

func TestChunkText_LargeOverlapStillTerminates(t *testing.T) {
	text := strings.Repeat("abc. ", 600)

	chunks := ChunkText(text, 100, 90)

	assert.NotEmpty(t, chunks)
	assert.Less(t, len(chunks), len(text))
}
