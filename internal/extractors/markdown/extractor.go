// Package markdown extracts plain text from Markdown files.
package markdown

import (
	"bytes"
	"html"
	"os"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles Markdown documents.
type Extractor struct{}

// New creates a new Markdown extractor.
func New() *Extractor {
	return &Extractor{}
}

// SupportedExtensions returns the file extensions this extractor handles.
func (e *Extractor) SupportedExtensions() []string {
	return []string{".md", ".markdown"}
}

// Extract reads the file and returns its plain text. ATX heading lines
// are kept verbatim so the structure-aware chunker can still split on
// them; everything else is rendered to HTML and tag-stripped.
func (e *Extractor) Extract(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &domain.ExtractionError{Path: path, Err: err}
	}

	text, err := ToPlainText(string(data))
	if err != nil {
		return "", &domain.ExtractionError{Path: path, Err: err}
	}
	return text, nil
}

var (
	headingRe  = regexp.MustCompile(`^#{1,6}\s`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
	newlinesRe = regexp.MustCompile(`\n{3,}`)
)

// ToPlainText converts markdown source to plain text, preserving ATX
// heading lines as structure anchors. Each run of non-heading lines is
// rendered with goldmark and the resulting markup is stripped.
func ToPlainText(source string) (string, error) {
	var (
		out     strings.Builder
		block   []string
		inFence bool
	)

	flush := func() error {
		if len(block) == 0 {
			return nil
		}
		text, err := renderAndStrip(strings.Join(block, "\n"))
		if err != nil {
			return err
		}
		if text != "" {
			out.WriteString(text)
			out.WriteString("\n")
		}
		block = block[:0]
		return nil
	}

	for _, line := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			block = append(block, line)
			continue
		}
		if !inFence && headingRe.MatchString(line) {
			if err := flush(); err != nil {
				return "", err
			}
			out.WriteString(strings.TrimRight(line, " \t"))
			out.WriteString("\n")
			continue
		}
		block = append(block, line)
	}
	if err := flush(); err != nil {
		return "", err
	}

	result := newlinesRe.ReplaceAllString(out.String(), "\n\n")
	return strings.TrimSpace(result), nil
}

// renderAndStrip converts a markdown fragment to HTML and removes all
// tags, leaving the rendered text content.
func renderAndStrip(fragment string) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(fragment), &buf); err != nil {
		return "", err
	}
	text := tagRe.ReplaceAllString(buf.String(), "")
	text = html.UnescapeString(text)
	return strings.TrimSpace(text), nil
}
