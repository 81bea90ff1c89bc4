// Package driving provides interfaces for the application core's entry
// points (primary/inbound ports), implemented by internal/core/services.
package driving

import (
	"context"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

// IngestService processes source files into embedded, stored chunks.
type IngestService interface {
	// IngestFiles runs extract -> chunk -> embed -> store for each path
	// independently. A failure on one file is reported in its
	// IngestReport and the batch continues; the returned error is
	// non-nil only when the batch itself could not run.
	IngestFiles(ctx context.Context, paths []string) ([]IngestReport, error)

	// DeleteDocument removes a document and all its chunks.
	DeleteDocument(ctx context.Context, documentID string) error

	// ListDocuments returns all ingested documents, newest first.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// CountChunks returns the number of chunks stored for a document.
	CountChunks(ctx context.Context, documentID string) (int, error)
}

// IngestReport describes the outcome of ingesting one file.
type IngestReport struct {
	// Path is the source file path.
	Path string

	// DocumentID is the stored document's ID on success.
	DocumentID string

	// Chunks is the number of chunks produced and stored.
	Chunks int

	// Err is the failure that caused this file to be skipped, if any.
	Err error
}
