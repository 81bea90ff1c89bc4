package chunking

import (
	"regexp"
	"strings"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

// section is one header-delimited region of a markdown document.
type section struct {
	// header is the nearest enclosing heading text, preferring the
	// closest level-1 heading, then level-2, then level-3, else "".
	header string

	// content is the section body, headings excluded.
	content string
}

var atxHeadingRe = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)

// splitByHeaders splits markdown text on ATX headings level 1-6.
// Content before the first heading becomes a section with an empty
// header. Text without any content yields domain.ErrInvalidInput so
// the caller can redirect to the general chunking path.
func splitByHeaders(text string) ([]section, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		sections []section
		body     []string
		inFence  bool
	)
	headers := make(map[int]string)

	flush := func() {
		content := strings.TrimSpace(strings.Join(body, "\n"))
		body = body[:0]
		if content == "" {
			return
		}
		sections = append(sections, section{header: preferredHeader(headers), content: content})
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			body = append(body, line)
			continue
		}
		if m := atxHeadingRe.FindStringSubmatch(line); m != nil && !inFence {
			flush()
			level := len(m[1])
			headers[level] = strings.TrimSpace(m[2])
			// A new heading invalidates deeper levels.
			for l := level + 1; l <= 6; l++ {
				delete(headers, l)
			}
			continue
		}
		body = append(body, line)
	}
	flush()

	if len(sections) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return sections, nil
}

// preferredHeader picks the heading recorded for a section, preferring
// level 1 over level 2 over level 3.
func preferredHeader(headers map[int]string) string {
	for _, level := range []int{1, 2, 3} {
		if h, ok := headers[level]; ok && h != "" {
			return h
		}
	}
	return ""
}
