// Package config loads the process-wide configuration from the
// environment. It is read once at startup into an immutable value that
// is passed to each component's constructor; components never consult
// the environment themselves.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

// Provider and store backend identifiers.
const (
	EmbeddingProviderOpenAI = "openai"
	EmbeddingProviderOllama = "ollama"

	LLMProviderOpenRouter = "openrouter"
	LLMProviderOllama     = "ollama"

	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Default values applied when the environment does not override them.
const (
	DefaultEmbeddingModel      = "text-embedding-ada-002"
	DefaultLLMModel            = "gpt-3.5-turbo"
	DefaultOpenRouterBaseURL   = "https://openrouter.ai/api/v1"
	DefaultOllamaBaseURL       = "http://localhost:11434"
	DefaultTemperature         = 0.7
	DefaultMaxTokens           = 1000
	DefaultTopK                = 5
	DefaultSimilarityThreshold = 0.78
	DefaultChunkSize           = 800
	DefaultChunkOverlap        = 200
)

// Config holds every setting the application reads from the environment.
type Config struct {
	// Embedding provider.
	EmbeddingProvider string
	EmbeddingModel    string
	OpenAIAPIKey      string

	// Generation provider.
	LLMProvider       string
	LLMModel          string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string

	// Shared Ollama endpoint for local embedding/generation.
	OllamaBaseURL string

	// Generation parameters.
	Temperature float64
	MaxTokens   int

	// Retrieval parameters.
	TopK                int
	SimilarityThreshold float64

	// Chunking parameters, measured in tokens.
	ChunkSize    int
	ChunkOverlap int

	// Store backend.
	Store       string
	DatabaseURL string
	DataDir     string
}

// Load reads configuration from the environment, after loading a .env
// file if one exists. Every missing required variable and every invalid
// value is collected into a single *domain.ConfigurationError so the
// operator can fix them all at once.
func Load() (*Config, error) {
	// Ignore absence of .env; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &Config{
		EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", EmbeddingProviderOpenAI),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", DefaultEmbeddingModel),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		LLMProvider:       getEnv("LLM_PROVIDER", LLMProviderOpenRouter),
		LLMModel:          getEnv("LLM_MODEL", DefaultLLMModel),
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", DefaultOpenRouterBaseURL),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", DefaultOllamaBaseURL),
		Store:             getEnv("CHATTY_STORE", StorePostgres),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DataDir:           os.Getenv("CHATTY_DATA_DIR"),
	}

	cerr := &domain.ConfigurationError{}

	cfg.Temperature = getFloat("TEMPERATURE", DefaultTemperature, cerr)
	cfg.MaxTokens = getInt("MAX_TOKENS", DefaultMaxTokens, cerr)
	cfg.TopK = getInt("TOP_K_RESULTS", DefaultTopK, cerr)
	cfg.SimilarityThreshold = getFloat("SIMILARITY_THRESHOLD", DefaultSimilarityThreshold, cerr)
	cfg.ChunkSize = getInt("CHUNK_SIZE", DefaultChunkSize, cerr)
	cfg.ChunkOverlap = getInt("CHUNK_OVERLAP", DefaultChunkOverlap, cerr)

	cfg.validate(cerr)

	if len(cerr.Missing) > 0 || len(cerr.Invalid) > 0 {
		return nil, cerr
	}
	return cfg, nil
}

// validate records every missing credential and out-of-range value.
// Credentials are only required for the providers actually selected.
func (c *Config) validate(cerr *domain.ConfigurationError) {
	switch c.EmbeddingProvider {
	case EmbeddingProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			cerr.Missing = append(cerr.Missing, "OPENAI_API_KEY")
		}
	case EmbeddingProviderOllama:
		// Local endpoint, no credential.
	default:
		cerr.Invalid = append(cerr.Invalid,
			fmt.Sprintf("EMBEDDING_PROVIDER must be %q or %q, got %q",
				EmbeddingProviderOpenAI, EmbeddingProviderOllama, c.EmbeddingProvider))
	}

	switch c.LLMProvider {
	case LLMProviderOpenRouter:
		if c.OpenRouterAPIKey == "" {
			cerr.Missing = append(cerr.Missing, "OPENROUTER_API_KEY")
		}
	case LLMProviderOllama:
	default:
		cerr.Invalid = append(cerr.Invalid,
			fmt.Sprintf("LLM_PROVIDER must be %q or %q, got %q",
				LLMProviderOpenRouter, LLMProviderOllama, c.LLMProvider))
	}

	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			cerr.Missing = append(cerr.Missing, "DATABASE_URL")
		}
	case StoreSQLite:
	default:
		cerr.Invalid = append(cerr.Invalid,
			fmt.Sprintf("CHATTY_STORE must be %q or %q, got %q",
				StorePostgres, StoreSQLite, c.Store))
	}

	if c.ChunkSize <= 0 {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("CHUNK_SIZE must be positive, got %d", c.ChunkSize))
	}
	if c.ChunkOverlap < 0 {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("CHUNK_OVERLAP must not be negative, got %d", c.ChunkOverlap))
	}
	if c.ChunkSize > 0 && c.ChunkOverlap >= c.ChunkSize {
		cerr.Invalid = append(cerr.Invalid,
			fmt.Sprintf("CHUNK_OVERLAP (%d) must be smaller than CHUNK_SIZE (%d)", c.ChunkOverlap, c.ChunkSize))
	}
	if c.TopK <= 0 {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("TOP_K_RESULTS must be positive, got %d", c.TopK))
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		cerr.Invalid = append(cerr.Invalid,
			fmt.Sprintf("SIMILARITY_THRESHOLD must be in [0, 1], got %g", c.SimilarityThreshold))
	}
	if c.MaxTokens <= 0 {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("MAX_TOKENS must be positive, got %d", c.MaxTokens))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int, cerr *domain.ConfigurationError) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("%s must be an integer, got %q", key, v))
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64, cerr *domain.ConfigurationError) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		cerr.Invalid = append(cerr.Invalid, fmt.Sprintf("%s must be a number, got %q", key, v))
		return fallback
	}
	return f
}
