package extractors

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
	"github.com/chatty-labs/chatty-cli/internal/extractors/markdown"
	"github.com/chatty-labs/chatty-cli/internal/extractors/pdf"
)

// Registry selects an extractor by file extension.
type Registry struct {
	byExtension map[string]driven.Extractor
}

// NewRegistry creates a registry with the given extractors.
func NewRegistry(extractors ...driven.Extractor) *Registry {
	r := &Registry{byExtension: make(map[string]driven.Extractor)}
	for _, e := range extractors {
		for _, ext := range e.SupportedExtensions() {
			r.byExtension[ext] = e
		}
	}
	return r
}

// NewDefaultRegistry creates a registry with all built-in extractors.
func NewDefaultRegistry() *Registry {
	return NewRegistry(pdf.New(), markdown.New())
}

// ForFile returns the extractor for the file's extension.
// Returns domain.ErrUnsupportedFormat naming the extension when no
// extractor handles it.
func (r *Registry) ForFile(path string) (driven.Extractor, error) {
	ext := strings.ToLower(filepath.Ext(path))
	e, ok := r.byExtension[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
	}
	return e, nil
}

// Extract selects an extractor for the path and runs it.
func (r *Registry) Extract(path string) (string, error) {
	e, err := r.ForFile(path)
	if err != nil {
		return "", err
	}
	return e.Extract(path)
}
