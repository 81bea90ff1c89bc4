package services

import (
	"context"
	"os"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
)

// mockEmbedding produces deterministic vectors derived from the text
// so tests can check which text a vector belongs to.
type mockEmbedding struct {
	dims       int
	err        error
	embedCalls int
	batchCalls int
}

func vectorFor(text string, dims int) []float32 {
	v := make([]float32, dims)
	var sum float32
	for _, r := range text {
		sum += float32(r)
	}
	v[0] = sum
	for i := 1; i < dims; i++ {
		v[i] = 1
	}
	return v
}

func (m *mockEmbedding) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	if m.err != nil {
		return nil, m.err
	}
	return vectorFor(text, m.dims), nil
}

func (m *mockEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = vectorFor(text, m.dims)
	}
	return out, nil
}

func (m *mockEmbedding) Dimensions() int   { return m.dims }
func (m *mockEmbedding) ModelName() string { return "mock-embedding" }
func (m *mockEmbedding) Close() error      { return nil }

// mockStore records calls and can fail on demand.
type mockStore struct {
	insertDocErr    error
	insertChunksErr error
	searchErr       error
	deleteErr       error
	listErr         error
	countErr        error

	insertedDocs   []domain.Document
	insertedChunks map[string][]domain.Chunk
	searchResults  []domain.RetrievalResult

	lastQuery     []float32
	lastTopK      int
	lastThreshold float64
}

func newMockStore() *mockStore {
	return &mockStore{insertedChunks: make(map[string][]domain.Chunk)}
}

func (m *mockStore) InsertDocument(_ context.Context, doc *domain.Document) (string, error) {
	if m.insertDocErr != nil {
		return "", m.insertDocErr
	}
	m.insertedDocs = append(m.insertedDocs, *doc)
	return doc.ID, nil
}

func (m *mockStore) InsertChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	if m.insertChunksErr != nil {
		return m.insertChunksErr
	}
	m.insertedChunks[documentID] = append(m.insertedChunks[documentID], chunks...)
	return nil
}

func (m *mockStore) Search(_ context.Context, query []float32, topK int, threshold float64) ([]domain.RetrievalResult, error) {
	m.lastQuery = query
	m.lastTopK = topK
	m.lastThreshold = threshold
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResults, nil
}

func (m *mockStore) DeleteDocument(_ context.Context, documentID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.insertedChunks, documentID)
	return nil
}

func (m *mockStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.insertedDocs, nil
}

func (m *mockStore) CountChunks(_ context.Context, documentID string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return len(m.insertedChunks[documentID]), nil
}

func (m *mockStore) Close() error { return nil }

// mockLLM records generation calls.
type mockLLM struct {
	calls    int
	response string
	err      error
}

func (m *mockLLM) Generate(_ context.Context, _ string, _ driven.GenerateOptions) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Close() error      { return nil }

// textExtractor serves .txt files by returning their raw content,
// keeping ingest tests off the PDF code path.
type textExtractor struct{}

func (textExtractor) SupportedExtensions() []string { return []string{".txt"} }

func (textExtractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.ExtractionError{Path: path, Err: err}
	}
	return string(data), nil
}
