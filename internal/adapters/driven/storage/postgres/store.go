// Package postgres provides a PostgreSQL-backed implementation of the
// vector store port using the pgvector extension. Similarity search
// runs in the database: cosine distance with an ivfflat index, so the
// scan never leaves the server.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a PostgreSQL + pgvector vector store.
type Store struct {
	pool       *pgxpool.Pool
	dimensions int
}

// NewStore connects to the database and ensures the schema exists.
// dimensions fixes the vector column width; it must match the
// embedding model in use.
func NewStore(ctx context.Context, databaseURL string, dimensions int) (*Store, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("postgres: database URL is required")
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("postgres: dimensions must be positive, got %d", dimensions)
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{
		pool:       pool,
		dimensions: dimensions,
	}

	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensuring schema: %w", err)
	}

	return s, nil
}

// ensureSchema creates the extension, tables and index if absent.
func (s *Store) ensureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		`CREATE TABLE IF NOT EXISTS documents (
			id           TEXT PRIMARY KEY,
			filename     TEXT NOT NULL,
			title        TEXT NOT NULL DEFAULT '',
			content_type TEXT NOT NULL DEFAULT '',
			file_size    BIGINT NOT NULL DEFAULT 0,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS chunks (
			id          BIGSERIAL PRIMARY KEY,
			document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
			chunk_index INTEGER NOT NULL,
			content     TEXT NOT NULL,
			metadata    JSONB NOT NULL DEFAULT 'null',
			embedding   vector(%d) NOT NULL
		)`, s.dimensions),
		`CREATE INDEX IF NOT EXISTS idx_chunks_document_id ON chunks(document_id)`,
		`CREATE INDEX IF NOT EXISTS idx_chunks_embedding ON chunks
			USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:min(40, len(stmt))], err)
		}
	}
	return nil
}

// InsertDocument stores a document record and returns its ID.
func (s *Store) InsertDocument(ctx context.Context, doc *domain.Document) (string, error) {
	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO documents (id, filename, title, content_type, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, doc.ID, doc.Filename, doc.Title, doc.ContentType, doc.FileSize, createdAt)
	if err != nil {
		return "", fmt.Errorf("inserting document: %w", err)
	}

	return doc.ID, nil
}

// InsertChunks stores all chunks for a document in one transaction.
// Every embedding is checked against the configured dimensionality
// before any row is written.
func (s *Store) InsertChunks(ctx context.Context, documentID string, chunks []domain.Chunk) error {
	for i, chunk := range chunks {
		if len(chunk.Embedding) != s.dimensions {
			return fmt.Errorf("chunk %d: embedding has %d dimensions, store expects %d",
				i, len(chunk.Embedding), s.dimensions)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, chunk := range chunks {
		batch.Queue(`
			INSERT INTO chunks (document_id, chunk_index, content, metadata, embedding)
			VALUES ($1, $2, $3, $4, $5)
		`, documentID, chunk.Index, chunk.Content, chunk.Metadata, pgvector.NewVector(chunk.Embedding))
	}

	results := tx.SendBatch(ctx, batch)
	for i := range chunks {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("closing batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search ranks chunks by cosine similarity in the database. pgvector's
// <=> operator is cosine distance, so similarity is 1 - distance.
func (s *Store) Search(ctx context.Context, query []float32, topK int, threshold float64) ([]domain.RetrievalResult, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, store expects %d", len(query), s.dimensions)
	}
	if topK <= 0 {
		return []domain.RetrievalResult{}, nil
	}

	vec := pgvector.NewVector(query)
	rows, err := s.pool.Query(ctx, `
		SELECT content, metadata, 1 - (embedding <=> $1) AS similarity
		FROM chunks
		WHERE 1 - (embedding <=> $1) >= $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`, vec, threshold, topK)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievalResult
	for rows.Next() {
		var r domain.RetrievalResult
		if err := rows.Scan(&r.Content, &r.Metadata, &r.Similarity); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}
	return results, nil
}

// DeleteDocument removes a document; the foreign key cascades to its
// chunks.
func (s *Store) DeleteDocument(ctx context.Context, documentID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, documentID)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
	}
	return nil
}

// ListDocuments returns all documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, filename, title, content_type, file_size, created_at
		FROM documents
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var doc domain.Document
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Title, &doc.ContentType, &doc.FileSize, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// CountChunks returns the number of chunks stored for a document.
func (s *Store) CountChunks(ctx context.Context, documentID string) (int, error) {
	var count int
	row := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM chunks WHERE document_id = $1`, documentID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
