package driving

import (
	"context"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

// AnswerService answers questions against the ingested corpus.
type AnswerService interface {
	// Ask embeds the question, retrieves the most similar chunks and
	// generates a grounded answer. The returned Answer carries the
	// ranked sources used to build the prompt.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
