package chunking

import (
	"strings"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

// contentTypeGroups holds the keyword groups checked when classifying a
// chunk, in fixed precedence order: the first group with any match
// wins. The precedence (claims > legal > procedural > contact) affects
// classification determinism and is deliberately stable.
var contentTypeGroups = []struct {
	contentType string
	keywords    []string
}{
	{domain.ContentTypeClaims, []string{"claim", "injury", "compensation", "benefits"}},
	{domain.ContentTypeLegal, []string{"law", "regulation", "policy", "rule"}},
	{domain.ContentTypeProcedural, []string{"process", "step", "procedure", "how to"}},
	{domain.ContentTypeContact, []string{"contact", "phone", "email", "address"}},
}

// keyTopicVocabulary is the fixed domain vocabulary scanned for topic
// tagging. Matches are reported in this listed order, not alphabetical.
var keyTopicVocabulary = []string{
	"workers compensation", "injury", "claim", "benefits", "medical",
	"rehabilitation", "return to work", "permanent impairment", "weekly payments",
	"employer", "employee", "insurance", "legal", "appeal", "dispute",
}

// classifyContent assigns a coarse topical classification based on
// case-insensitive keyword presence. Defaults to "general".
func classifyContent(text string) string {
	lower := strings.ToLower(text)
	for _, group := range contentTypeGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.contentType
			}
		}
	}
	return domain.ContentTypeGeneral
}

// extractKeyTopics returns every vocabulary term found in the text,
// matched case-insensitively, in vocabulary order.
func extractKeyTopics(text string) []string {
	lower := strings.ToLower(text)
	topics := []string{}
	for _, kw := range keyTopicVocabulary {
		if strings.Contains(lower, kw) {
			topics = append(topics, kw)
		}
	}
	return topics
}

// wordCount counts whitespace-delimited words.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
