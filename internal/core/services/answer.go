package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatty-labs/chatty-cli/internal/compose"
	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driving"
	"github.com/chatty-labs/chatty-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService answers questions against the ingested corpus.
type AnswerService struct {
	embedding driven.EmbeddingService
	store     driven.VectorStore
	composer  *compose.Composer

	topK      int
	threshold float64
}

// NewAnswerService creates a new answer service. topK and threshold
// bound the similarity search; the store guarantees ordering and
// threshold filtering.
func NewAnswerService(
	embedding driven.EmbeddingService,
	store driven.VectorStore,
	composer *compose.Composer,
	topK int,
	threshold float64,
) *AnswerService {
	return &AnswerService{
		embedding: embedding,
		store:     store,
		composer:  composer,
		topK:      topK,
		threshold: threshold,
	}
}

// Ask embeds the question, retrieves the most similar chunks and
// generates a grounded answer. Any gateway fault surfaces as one
// terminal error for this question; the process stays up for the next.
func (s *AnswerService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	logger.Section("Question Answering")

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	vector, err := s.embedding.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding question: %v", domain.ErrEmbedding, err)
	}
	logger.Debug("question embedded: %d dimensions", len(vector))

	results, err := s.store.Search(ctx, vector, s.topK, s.threshold)
	if err != nil {
		return nil, fmt.Errorf("%w: searching chunks: %v", domain.ErrStore, err)
	}
	logger.Info("retrieved %d chunks above threshold %.2f", len(results), s.threshold)

	text, err := s.composer.Compose(ctx, question, results)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{Text: text, Sources: results}, nil
}
