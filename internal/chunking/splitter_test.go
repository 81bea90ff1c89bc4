package chunking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenSplitter_Validation(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
		wantErr bool
	}{
		{name: "valid", size: 100, overlap: 20, wantErr: false},
		{name: "zero overlap", size: 100, overlap: 0, wantErr: false},
		{name: "zero size", size: 0, overlap: 0, wantErr: true},
		{name: "negative size", size: -1, overlap: 0, wantErr: true},
		{name: "negative overlap", size: 100, overlap: -1, wantErr: true},
		{name: "overlap equals size", size: 100, overlap: 100, wantErr: true},
		{name: "overlap exceeds size", size: 100, overlap: 150, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewTokenSplitter(tt.size, tt.overlap)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, s)
			}
		})
	}
}

func TestTokenSplitter_Split_Empty(t *testing.T) {
	s, err := NewTokenSplitter(100, 20)
	require.NoError(t, err)

	assert.Nil(t, s.Split(""))
}

func TestTokenSplitter_Split_FitsInOneChunk(t *testing.T) {
	s, err := NewTokenSplitter(100, 20)
	require.NoError(t, err)

	text := "A short paragraph that fits comfortably in one chunk."
	chunks := s.Split(text)

	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])
}

func TestTokenSplitter_Split_RespectsTokenBudget(t *testing.T) {
	s, err := NewTokenSplitter(50, 10)
	require.NoError(t, err)

	// Long enough to force many chunks.
	sentence := "Workers compensation claims must be lodged with the insurer within the statutory period. "
	text := strings.Repeat(sentence, 40)

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, s.CountTokens(chunk), 50, "chunk %d exceeds token budget", i)
		assert.NotEmpty(t, strings.TrimSpace(chunk), "chunk %d is blank", i)
	}
}

func TestTokenSplitter_Split_LargeOverlapStaysWithinBudget(t *testing.T) {
	// Pieces smaller than the overlap budget: the carry must shrink
	// until the next piece fits, never pushing a chunk past the limit.
	s, err := NewTokenSplitter(50, 40)
	require.NoError(t, err)

	var b strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&b, "Paragraph %d describes how the insurer assesses a claim.\n\n", i)
	}
	text := b.String()

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, s.CountTokens(chunk), 50, "chunk %d exceeds token budget", i)
	}
	// Overlap repeats content but every paragraph must still be covered.
	joined := strings.Join(chunks, "")
	for i := 0; i < 10; i++ {
		assert.Contains(t, joined, fmt.Sprintf("Paragraph %d", i))
	}
}

func TestTokenSplitter_Split_RepeatedParagraphsAllEmitted(t *testing.T) {
	s, err := NewTokenSplitter(50, 40)
	require.NoError(t, err)

	// Ten identical paragraphs, each larger than the overlap budget.
	para := strings.Repeat("claim form ", 21) + "\n\n"
	text := strings.Repeat(para, 10)

	chunks := s.Split(text)
	assert.Len(t, chunks, 10)
	// Nothing carries over, so the chunks partition the input exactly.
	assert.Equal(t, text, strings.Join(chunks, ""))
	for i, chunk := range chunks {
		assert.LessOrEqual(t, s.CountTokens(chunk), 50, "chunk %d exceeds token budget", i)
	}
}

func TestTokenSplitter_Split_NoOverlapReconstructsInput(t *testing.T) {
	s, err := NewTokenSplitter(30, 0)
	require.NoError(t, err)

	text := strings.Repeat("Each paragraph holds a handful of words.\n\n", 20)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// With no overlap the chunks partition the input exactly.
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestTokenSplitter_Split_PrefersParagraphBoundary(t *testing.T) {
	s, err := NewTokenSplitter(40, 0)
	require.NoError(t, err)

	para := strings.Repeat("word ", 30)
	text := para + "\n\n" + para

	chunks := s.Split(text)
	require.GreaterOrEqual(t, len(chunks), 2)
	assert.True(t, strings.HasSuffix(chunks[0], "\n\n"),
		"first chunk should end at the paragraph boundary, got %q", chunks[0])
}

func TestTokenSplitter_Split_HardCutUnbrokenText(t *testing.T) {
	s, err := NewTokenSplitter(20, 5)
	require.NoError(t, err)

	// No separators at all: one long token run.
	text := strings.Repeat("abcdefghij", 100)
	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, s.CountTokens(chunk), 20, "chunk %d exceeds token budget", i)
	}
}

func TestTokenSplitter_CountTokens(t *testing.T) {
	s, err := NewTokenSplitter(100, 0)
	require.NoError(t, err)

	assert.Zero(t, s.CountTokens(""))
	assert.Positive(t, s.CountTokens("hello world"))
	// Tokens are multi-character on average for English prose.
	text := "The quick brown fox jumps over the lazy dog."
	assert.Less(t, s.CountTokens(text), len(text))
}
