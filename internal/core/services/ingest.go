// Package services implements the application core: ingesting
// documents into the vector store and answering questions against it.
package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chatty-labs/chatty-cli/internal/chunking"
	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driving"
	"github.com/chatty-labs/chatty-cli/internal/extractors"
	"github.com/chatty-labs/chatty-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// embedBatchSize bounds how many chunk texts go into one embedding
// call. Order within a batch is preserved: response index i maps to
// request index i.
const embedBatchSize = 64

// IngestService processes source files into embedded, stored chunks.
type IngestService struct {
	registry  *extractors.Registry
	chunker   *chunking.Chunker
	embedding driven.EmbeddingService
	store     driven.VectorStore
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	registry *extractors.Registry,
	chunker *chunking.Chunker,
	embedding driven.EmbeddingService,
	store driven.VectorStore,
) *IngestService {
	return &IngestService{
		registry:  registry,
		chunker:   chunker,
		embedding: embedding,
		store:     store,
	}
}

// IngestFiles processes each path independently: extract, chunk,
// embed, store. A failure on one file is recorded in its report and
// the batch continues.
func (s *IngestService) IngestFiles(ctx context.Context, paths []string) ([]driving.IngestReport, error) {
	logger.Section("Document Ingestion")

	reports := make([]driving.IngestReport, 0, len(paths))
	for _, path := range paths {
		report := driving.IngestReport{Path: path}

		docID, chunkCount, err := s.ingestFile(ctx, path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			report.Err = err
		} else {
			logger.Info("ingested %s: %d chunks (document %s)", path, chunkCount, docID)
			report.DocumentID = docID
			report.Chunks = chunkCount
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ingestFile runs the full pipeline for one file. Chunks are only
// written after every embedding succeeded: either all chunk rows of a
// document land in the store, or none do.
func (s *IngestService) ingestFile(ctx context.Context, path string) (string, int, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", 0, &domain.ExtractionError{Path: path, Err: err}
	}

	text, err := s.registry.Extract(path)
	if err != nil {
		return "", 0, err
	}
	logger.Debug("extracted %d chars from %s", len(text), path)

	filename := filepath.Base(path)
	chunks, err := s.chunker.Chunk(text, filename, "")
	if err != nil {
		return "", 0, fmt.Errorf("chunking %s: %w", path, err)
	}
	logger.Debug("produced %d chunks", len(chunks))

	if err := s.embedChunks(ctx, chunks); err != nil {
		return "", 0, err
	}

	doc := &domain.Document{
		ID:          uuid.New().String(),
		Filename:    filename,
		Title:       strings.TrimSuffix(filename, filepath.Ext(filename)),
		ContentType: strings.ToLower(filepath.Ext(filename)),
		FileSize:    info.Size(),
		CreatedAt:   time.Now(),
	}

	docID, err := s.store.InsertDocument(ctx, doc)
	if err != nil {
		return "", 0, fmt.Errorf("%w: inserting document for %s: %v", domain.ErrStore, path, err)
	}

	if len(chunks) > 0 {
		for i := range chunks {
			chunks[i].DocumentID = docID
		}
		if err := s.store.InsertChunks(ctx, docID, chunks); err != nil {
			return "", 0, fmt.Errorf("%w: inserting chunks for %s: %v", domain.ErrStore, path, err)
		}
	}

	return docID, len(chunks), nil
}

// embedChunks fills in the Embedding field of every chunk, batching
// the texts to bound request size while preserving order.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		texts := make([]string, 0, end-start)
		for _, c := range chunks[start:end] {
			texts = append(texts, c.Content)
		}

		vectors, err := s.embedding.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrEmbedding, err)
		}
		if len(vectors) != len(texts) {
			return fmt.Errorf("%w: got %d vectors for %d texts", domain.ErrEmbedding, len(vectors), len(texts))
		}

		for i, vec := range vectors {
			chunks[start+i].Embedding = vec
		}
	}
	return nil
}

// DeleteDocument removes a document and all its chunks.
func (s *IngestService) DeleteDocument(ctx context.Context, documentID string) error {
	if err := s.store.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("%w: deleting document %s: %v", domain.ErrStore, documentID, err)
	}
	return nil
}

// ListDocuments returns all ingested documents, newest first.
func (s *IngestService) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	docs, err := s.store.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: listing documents: %v", domain.ErrStore, err)
	}
	return docs, nil
}

// CountChunks returns the number of chunks stored for a document.
func (s *IngestService) CountChunks(ctx context.Context, documentID string) (int, error) {
	n, err := s.store.CountChunks(ctx, documentID)
	if err != nil {
		return 0, fmt.Errorf("%w: counting chunks for %s: %v", domain.ErrStore, documentID, err)
	}
	return n, nil
}
