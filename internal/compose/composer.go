// Package compose assembles retrieved passages into a grounded prompt
// and produces the final answer through the generation gateway.
package compose

import (
	"context"
	"fmt"
	"strings"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
	"github.com/chatty-labs/chatty-cli/internal/logger"
)

// InsufficientKnowledgeMessage is returned, without invoking
// generation, when retrieval produced no usable context.
const InsufficientKnowledgeMessage = "I don't have enough information in my knowledge base to answer your question accurately. " +
	"Please ensure relevant workers' compensation documents have been uploaded."

// promptTemplate embeds the context block, the question and the
// grounding rules into a single generation request.
const promptTemplate = `You are Chatty, an AI assistant specializing in Australian workers' compensation law and regulations. You provide accurate, helpful information based on the provided context.

Context Information:
%s

Question: %s

Instructions:
1. Answer the question based on the provided context
2. If the context doesn't contain enough information to answer the question, say so clearly
3. Provide specific, actionable information when possible
4. Cite your sources using the numbered references [1], [2], etc.
5. Keep your response concise but comprehensive
6. Focus on Australian workers' compensation law and regulations

Answer:`

// Composer builds grounded prompts and invokes the generation gateway.
type Composer struct {
	llm         driven.LLMService
	temperature float64
	maxTokens   int
}

// New creates a composer that generates with the given parameters.
func New(llm driven.LLMService, temperature float64, maxTokens int) *Composer {
	return &Composer{llm: llm, temperature: temperature, maxTokens: maxTokens}
}

// Compose produces an answer for the question grounded in the
// retrieval results. Empty results short-circuit to the fixed
// insufficient-knowledge message with zero generation calls.
func (c *Composer) Compose(ctx context.Context, question string, results []domain.RetrievalResult) (string, error) {
	if len(results) == 0 {
		logger.Debug("no retrieval results, returning insufficient-knowledge message")
		return InsufficientKnowledgeMessage, nil
	}

	prompt := BuildPrompt(question, results)
	logger.Debug("prompt built: %d context blocks, %d chars", len(results), len(prompt))

	answer, err := c.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return strings.TrimSpace(answer), nil
}

// BuildPrompt assembles the generation prompt: a numbered context
// block per result, in ranked order, followed by the question and the
// grounding instructions.
func BuildPrompt(question string, results []domain.RetrievalResult) string {
	var blocks []string
	for i, r := range results {
		blocks = append(blocks, fmt.Sprintf("[%d] Source: %s (%s)\n%s\n",
			i+1, r.SourceTitle(), r.SourceFilename(), r.Content))
	}
	return fmt.Sprintf(promptTemplate, strings.Join(blocks, "\n"), question)
}
