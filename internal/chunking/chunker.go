// Package chunking splits extracted document text into overlapping
// passages for embedding and retrieval. The strategy is chosen per
// file type: markdown documents are split along their heading
// structure first, everything else goes through a token-bounded
// splitter with topical classification.
package chunking

import (
	"path/filepath"
	"strings"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/logger"
)

// Chunker turns plain text into an ordered chunk sequence with
// descriptive metadata.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
	splitter     *TokenSplitter

	// headerSplit is the markdown header splitter; a field so tests
	// can exercise the fallback path.
	headerSplit func(string) ([]section, error)
}

// New creates a chunker. size and overlap are measured in tokens of
// the reference encoding.
func New(size, overlap int) (*Chunker, error) {
	splitter, err := NewTokenSplitter(size, overlap)
	if err != nil {
		return nil, err
	}
	return &Chunker{
		chunkSize:    size,
		chunkOverlap: overlap,
		splitter:     splitter,
		headerSplit:  splitByHeaders,
	}, nil
}

// Chunk splits text into an ordered chunk sequence. The strategy is
// selected by the filename's extension. title defaults to the filename
// stem. Empty input yields an empty sequence, not an error.
func (c *Chunker) Chunk(text, filename, title string) ([]domain.Chunk, error) {
	if title == "" {
		title = titleFromFilename(filename)
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".md" || ext == ".markdown" {
		return c.chunkMarkdown(text, filename, title), nil
	}
	return c.chunkGeneral(text, filename, title), nil
}

// chunkMarkdown splits along the heading structure, re-splitting
// oversized sections with the token splitter. When the header split
// cannot make sense of the input it redirects to the general path
// rather than failing the document.
func (c *Chunker) chunkMarkdown(text, filename, title string) []domain.Chunk {
	sections, err := c.headerSplit(text)
	if err != nil {
		logger.Warn("markdown header split failed for %s, falling back to general chunking: %v", filename, err)
		return c.chunkGeneral(text, filename, title)
	}

	var chunks []domain.Chunk
	for _, sec := range sections {
		var parts []string
		if len(sec.content) > c.chunkSize {
			parts = c.splitter.Split(sec.content)
		} else {
			parts = []string{sec.content}
		}

		for i, part := range parts {
			chunks = append(chunks, domain.Chunk{
				Index:   len(chunks),
				Content: strings.TrimSpace(part),
				Metadata: map[string]any{
					domain.MetaFilename:       filename,
					domain.MetaTitle:          title,
					domain.MetaChunkIndex:     len(chunks),
					domain.MetaSectionHeader:  sec.header,
					domain.MetaFileType:       "markdown",
					domain.MetaSubChunkIndex:  i,
					domain.MetaTotalSubChunks: len(parts),
				},
			})
		}
	}

	for i := range chunks {
		chunks[i].Metadata[domain.MetaTotalChunks] = len(chunks)
	}
	return chunks
}

// chunkGeneral token-splits the whole text and annotates each chunk
// with its topical classification.
func (c *Chunker) chunkGeneral(text, filename, title string) []domain.Chunk {
	parts := c.splitter.Split(text)

	chunks := make([]domain.Chunk, 0, len(parts))
	for i, part := range parts {
		trimmed := strings.TrimSpace(part)
		chunks = append(chunks, domain.Chunk{
			Index:   i,
			Content: trimmed,
			Metadata: map[string]any{
				domain.MetaFilename:    filename,
				domain.MetaTitle:       title,
				domain.MetaChunkIndex:  i,
				domain.MetaTotalChunks: len(parts),
				domain.MetaFileType:    strings.ToLower(filepath.Ext(filename)),
				domain.MetaContentType: classifyContent(trimmed),
				domain.MetaKeyTopics:   extractKeyTopics(trimmed),
				domain.MetaWordCount:   wordCount(trimmed),
			},
		})
	}
	return chunks
}

// titleFromFilename derives a title from the filename stem.
func titleFromFilename(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
