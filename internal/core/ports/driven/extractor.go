package driven

// Extractor converts one source file into plain text.
// Each extractor handles specific file extensions (e.g., PDF, Markdown).
type Extractor interface {
	// SupportedExtensions returns the lowercase file extensions this
	// extractor handles, including the leading dot.
	SupportedExtensions() []string

	// Extract reads the file and returns its trimmed plain text.
	// Failures are reported as *domain.ExtractionError so the batch
	// loop can name and skip the one file.
	Extract(path string) (string, error)
}
