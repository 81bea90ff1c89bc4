package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file extension no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmbedding indicates the embedding provider failed.
	// The core never retries; resilience belongs to the gateway.
	ErrEmbedding = errors.New("embedding failed")

	// ErrGeneration indicates the generation provider failed.
	ErrGeneration = errors.New("generation failed")

	// ErrStore indicates the retrieval store failed.
	ErrStore = errors.New("store operation failed")
)

// ExtractionError reports a failure to extract text from one source file.
// It carries the file path so a batch ingest can name the file it skipped.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ConfigurationError aggregates every missing required setting so the
// operator sees the full list at once rather than one variable per run.
type ConfigurationError struct {
	Missing []string
	Invalid []string
}

func (e *ConfigurationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required environment variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid settings: "+strings.Join(e.Invalid, "; "))
	}
	if len(parts) == 0 {
		return "configuration error"
	}
	return strings.Join(parts, "; ")
}
