// Package sqlite provides a SQLite-backed implementation of the vector
// store port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. SQLite has no
// native vector type, so embeddings are stored as little-endian float32
// blobs and similarity search is a brute-force cosine scan in Go. That
// keeps the adapter dependency-free and is fast enough for the corpus
// sizes a single-user knowledge base reaches.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in
// the migrations/ directory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking
// provided by SQLite in WAL mode.
package sqlite
