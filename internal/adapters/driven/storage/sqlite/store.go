package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/chatty-labs/chatty-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// Store is a SQLite-backed vector store. Embeddings live in the chunk
// rows as little-endian float32 blobs; search is a brute-force cosine
// scan in Go.
type Store struct {
	db         *sql.DB
	path       string
	dimensions int
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.chatty/data/chatty.db. dimensions
// fixes the embedding size every chunk must carry.
func NewStore(dataDir string, dimensions int) (*Store, error) {
	if dimensions <= 0 {
		return nil, fmt.Errorf("sqlite: dimensions must be positive, got %d", dimensions)
	}

	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".chatty", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "chatty.db")

	// Open database with WAL mode for better concurrency. Foreign keys
	// go in the DSN so the cascade holds on every pooled connection.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:         db,
		path:       dbPath,
		dimensions: dimensions,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
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

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, filename, title, content_type, file_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.Filename, doc.Title, doc.ContentType, doc.FileSize, createdAt.UTC().Format(time.RFC3339Nano))
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (document_id, chunk_index, content, metadata, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range chunks {
		metadataJSON, err := marshalMetadata(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling metadata for chunk %d: %w", i, err)
		}

		if _, err := stmt.ExecContext(ctx,
			documentID, chunk.Index, chunk.Content, metadataJSON, encodeVector(chunk.Embedding),
		); err != nil {
			return fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search scans every chunk and ranks by cosine similarity. Results are
// returned in descending similarity, truncated to topK, with anything
// below the threshold excluded.
func (s *Store) Search(ctx context.Context, query []float32, topK int, threshold float64) ([]domain.RetrievalResult, error) {
	if len(query) != s.dimensions {
		return nil, fmt.Errorf("query has %d dimensions, store expects %d", len(query), s.dimensions)
	}
	if topK <= 0 {
		return []domain.RetrievalResult{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT content, metadata, embedding FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievalResult
	for rows.Next() {
		var (
			content      string
			metadataJSON string
			blob         []byte
		)
		if err := rows.Scan(&content, &metadataJSON, &blob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		embedding, err := decodeVector(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding embedding: %w", err)
		}
		if len(embedding) != len(query) {
			continue // Stored under a different model, not comparable
		}

		similarity := cosineSimilarity(query, embedding)
		if similarity < threshold {
			continue
		}

		metadata, err := unmarshalMetadata(metadataJSON)
		if err != nil {
			return nil, fmt.Errorf("unmarshalling metadata: %w", err)
		}

		results = append(results, domain.RetrievalResult{
			Content:    content,
			Metadata:   metadata,
			Similarity: similarity,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// DeleteDocument removes a document; the foreign key cascades to its
// chunks.
func (s *Store) DeleteDocument(ctx context.Context, documentID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: document %s", domain.ErrNotFound, documentID)
	}
	return nil
}

// ListDocuments returns all documents, newest first.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
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
		var (
			doc       domain.Document
			createdAt string
		)
		if err := rows.Scan(&doc.ID, &doc.Filename, &doc.Title, &doc.ContentType, &doc.FileSize, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
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
	row := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chunks WHERE document_id = ?`, documentID)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// encodeVector packs a float32 slice into a little-endian blob.
func encodeVector(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// decodeVector unpacks a little-endian blob into a float32 slice.
func decodeVector(buf []byte) ([]float32, error) {
	if len(buf)%4 != 0 {
		return nil, fmt.Errorf("embedding blob length %d is not a multiple of 4", len(buf))
	}
	v := make([]float32, len(buf)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v, nil
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

// marshalMetadata serialises chunk metadata to JSON text.
func marshalMetadata(m map[string]any) (string, error) {
	if m == nil {
		return jsonNull, nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// unmarshalMetadata deserialises JSON text to chunk metadata.
func unmarshalMetadata(s string) (map[string]any, error) {
	if s == "" || s == jsonNull {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}
