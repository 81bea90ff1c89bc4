// Package memory provides an in-memory implementation of the vector
// store port. It serves tests and throwaway sessions where nothing
// should touch disk.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory vector store. All operations are
// thread-safe.
type VectorStore struct {
	mu         sync.RWMutex
	dimensions int
	documents  map[string]domain.Document
	chunks     map[string][]domain.Chunk // keyed by document ID
}

// NewVectorStore creates an empty in-memory store that accepts
// embeddings of the given dimensionality.
func NewVectorStore(dimensions int) *VectorStore {
	return &VectorStore{
		dimensions: dimensions,
		documents:  make(map[string]domain.Document),
		chunks:     make(map[string][]domain.Chunk),
	}
}

// InsertDocument stores a document record and returns its ID.
func (s *VectorStore) InsertDocument(_ context.Context, doc *domain.Document) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[doc.ID]; exists {
		return "", fmt.Errorf("document %s already exists", doc.ID)
	}
	s.documents[doc.ID] = *doc
	return doc.ID, nil
}

// InsertChunks stores all chunks for a document. Every embedding is
// checked against the configured dimensionality before any chunk is
// kept.
func (s *VectorStore) InsertChunks(_ context.Context, documentID string, chunks []domain.Chunk) error {
	for i, chunk := range chunks {
		if len(chunk.Embedding) != s.dimensions {
			return fmt.Errorf("chunk %d: embedding has %d dimensions, store expects %d",
				i, len(chunk.Embedding), s.dimensions)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[documentID]; !exists {
		return fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
	}
	s.chunks[documentID] = append(s.chunks[documentID], chunks...)
	return nil
}

// Search ranks every stored chunk by cosine similarity, descending,
// truncated to topK, excluding anything below the threshold.
func (s *VectorStore) Search(_ context.Context, query []float32, topK int, threshold float64) ([]domain.RetrievalResult, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, store expects %d", len(query), s.dimensions)
	}
	if topK <= 0 {
		return []domain.RetrievalResult{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.RetrievalResult
	for _, chunks := range s.chunks {
		for _, chunk := range chunks {
			similarity := cosineSimilarity(query, chunk.Embedding)
			if similarity < threshold {
				continue
			}
			results = append(results, domain.RetrievalResult{
				Content:    chunk.Content,
				Metadata:   chunk.Metadata,
				Similarity: similarity,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// DeleteDocument removes a document and all its chunks.
func (s *VectorStore) DeleteDocument(_ context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[documentID]; !exists {
		return fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
	}
	delete(s.documents, documentID)
	delete(s.chunks, documentID)
	return nil
}

// ListDocuments returns all documents, newest first.
func (s *VectorStore) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]domain.Document, 0, len(s.documents))
	for _, doc := range s.documents {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.After(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})
	return docs, nil
}

// CountChunks returns the number of chunks stored for a document.
func (s *VectorStore) CountChunks(_ context.Context, documentID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.chunks[documentID]), nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors
// of equal length. Zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
