package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

func TestExtractor_SupportedExtensions(t *testing.T) {
	e := New()
	assert.Equal(t, []string{".md", ".markdown"}, e.SupportedExtensions())
}

func TestExtractor_Extract_MissingFile(t *testing.T) {
	e := New()
	_, err := e.Extract(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)

	var extractionErr *domain.ExtractionError
	assert.ErrorAs(t, err, &extractionErr)
}

func TestExtractor_Extract_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guide.md")
	require.NoError(t, os.WriteFile(path, []byte("# Guide\n\nSome **bold** text."), 0600))

	e := New()
	text, err := e.Extract(path)
	require.NoError(t, err)

	assert.Contains(t, text, "# Guide")
	assert.Contains(t, text, "Some bold text.")
}

func TestToPlainText_PreservesHeadings(t *testing.T) {
	source := `# Benefits
Weekly payments are **paid** by the insurer.

## Appeals
Disputes go to the [tribunal](https://example.com).`

	text, err := ToPlainText(source)
	require.NoError(t, err)

	// Heading lines survive verbatim for the structure-aware chunker.
	assert.Contains(t, text, "# Benefits")
	assert.Contains(t, text, "## Appeals")

	// Inline markup is gone, rendered text remains.
	assert.Contains(t, text, "Weekly payments are paid by the insurer.")
	assert.Contains(t, text, "Disputes go to the tribunal.")
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "](")
}

func TestToPlainText_StripsListsAndEntities(t *testing.T) {
	source := "Items:\n\n- first & second\n- third\n"

	text, err := ToPlainText(source)
	require.NoError(t, err)

	assert.Contains(t, text, "first & second")
	assert.NotContains(t, text, "&amp;")
	assert.NotContains(t, text, "<li>")
}

func TestToPlainText_HeadingInsideFenceNotPreserved(t *testing.T) {
	source := "# Real\n```\n# inside fence\n```\n"

	text, err := ToPlainText(source)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(text, "# Real"))
	// The fenced line is rendered as code content, not kept as a heading line.
	assert.Contains(t, text, "# inside fence")
	assert.Equal(t, 1, strings.Count(text, "# Real"))
}

func TestToPlainText_CollapsesBlankRuns(t *testing.T) {
	source := "para one\n\n\n\n\npara two"

	text, err := ToPlainText(source)
	require.NoError(t, err)
	assert.NotContains(t, text, "\n\n\n")
}

func TestToPlainText_Empty(t *testing.T) {
	text, err := ToPlainText("")
	require.NoError(t, err)
	assert.Empty(t, text)
}
