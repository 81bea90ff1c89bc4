package driven

import (
	"context"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

// VectorStore persists documents with their embedded chunks and serves
// similarity search. Search ordering and threshold filtering are part
// of the store contract: results come back in descending similarity,
// truncated to topK, with anything below the threshold excluded.
type VectorStore interface {
	// InsertDocument stores a document record and returns its ID.
	InsertDocument(ctx context.Context, doc *domain.Document) (string, error)

	// InsertChunks stores all chunks for a document in one batch.
	// Every chunk must carry an embedding of the store's configured
	// dimensionality; a mismatch fails before any row is written.
	InsertChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error

	// Search returns the chunks most similar to the query vector.
	Search(ctx context.Context, query []float32, topK int, threshold float64) ([]domain.RetrievalResult, error)

	// DeleteDocument removes a document and cascades to its chunks.
	DeleteDocument(ctx context.Context, documentID string) error

	// ListDocuments returns all documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// CountChunks returns the number of chunks stored for a document.
	CountChunks(ctx context.Context, documentID string) (int, error)

	// Close releases resources.
	Close() error
}
