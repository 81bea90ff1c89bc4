package chunking

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

// Encoding is the fixed reference tokenizer used to measure chunk
// sizes. Budgets are expressed in model tokens, not characters.
const Encoding = "cl100k_base"

// separators in preference order: paragraph, line, sentence, clause,
// word, then a hard character cut as the last resort.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", "; ", ": ", ", ", " ", ""}

// TokenSplitter splits text into pieces bounded by a token budget,
// preferring natural boundaries over hard cuts. Adjacent chunks share
// up to chunkOverlap tokens of trailing context; the overlap is a soft
// target since natural boundaries take precedence.
type TokenSplitter struct {
	chunkSize    int
	chunkOverlap int
	encoder      *tiktoken.Tiktoken
}

// NewTokenSplitter creates a splitter with the given token budget and
// overlap. overlap must be smaller than size.
func NewTokenSplitter(size, overlap int) (*TokenSplitter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, %d), got %d", size, overlap)
	}
	encoder, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, fmt.Errorf("loading %s encoding: %w", Encoding, err)
	}
	return &TokenSplitter{chunkSize: size, chunkOverlap: overlap, encoder: encoder}, nil
}

// CountTokens returns the token count of text under the reference encoding.
func (s *TokenSplitter) CountTokens(text string) int {
	return len(s.encoder.Encode(text, nil, nil))
}

// Split breaks text into chunks of at most chunkSize tokens each
// (the final chunk may be shorter). Empty input yields no chunks.
func (s *TokenSplitter) Split(text string) []string {
	if text == "" {
		return nil
	}
	if s.CountTokens(text) <= s.chunkSize {
		return []string{text}
	}
	pieces := s.splitRecursive(text, separators)
	return s.merge(pieces)
}

// splitRecursive breaks text into pieces that each fit the token
// budget, trying separators in preference order before hard-cutting.
func (s *TokenSplitter) splitRecursive(text string, seps []string) []string {
	if text == "" {
		return nil
	}
	if s.CountTokens(text) <= s.chunkSize {
		return []string{text}
	}

	sep, rest := nextSeparator(text, seps)
	if sep == "" {
		return s.hardCut(text)
	}

	var pieces []string
	for _, part := range splitKeepSeparator(text, sep) {
		if s.CountTokens(part) <= s.chunkSize {
			pieces = append(pieces, part)
		} else {
			pieces = append(pieces, s.splitRecursive(part, rest)...)
		}
	}
	return pieces
}

// nextSeparator picks the first separator present in the text and
// returns the remaining candidates for deeper recursion.
func nextSeparator(text string, seps []string) (string, []string) {
	for i, sep := range seps {
		if sep == "" {
			return "", nil
		}
		if strings.Contains(text, sep) {
			return sep, seps[i+1:]
		}
	}
	return "", nil
}

// splitKeepSeparator splits on sep, keeping the separator attached to
// the end of each part so rejoined chunks reconstruct the source.
func splitKeepSeparator(text, sep string) []string {
	parts := strings.Split(text, sep)
	out := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// hardCut slices the encoded tokens into windows of chunkSize with
// chunkOverlap tokens repeated between adjacent windows.
func (s *TokenSplitter) hardCut(text string) []string {
	tokens := s.encoder.Encode(text, nil, nil)
	if len(tokens) <= s.chunkSize {
		return []string{text}
	}

	step := s.chunkSize - s.chunkOverlap
	var out []string
	for start := 0; start < len(tokens); start += step {
		end := start + s.chunkSize
		if end > len(tokens) {
			end = len(tokens)
		}
		out = append(out, s.encoder.Decode(tokens[start:end]))
		if end == len(tokens) {
			break
		}
	}
	return out
}

// merge greedily packs pieces into chunks up to the token budget. On
// emitting a chunk, trailing pieces are kept as the head of the next
// one for context continuity, then dropped from the front until the
// carry is within chunkOverlap tokens and the next piece still fits
// the budget.
func (s *TokenSplitter) merge(pieces []string) []string {
	var (
		chunks  []string
		current []string
		tokens  int
	)

	for _, piece := range pieces {
		n := s.CountTokens(piece)
		if tokens+n > s.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, ""))
			for tokens > s.chunkOverlap || (tokens+n > s.chunkSize && tokens > 0) {
				tokens -= s.CountTokens(current[0])
				current = current[1:]
			}
		}
		current = append(current, piece)
		tokens += n
	}
	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, ""))
	}
	return chunks
}
