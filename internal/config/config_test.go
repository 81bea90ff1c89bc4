package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatty-labs/chatty-cli/internal/core/domain"
)

// clearEnv pins every variable Load reads so ambient environment
// cannot leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EMBEDDING_PROVIDER", "EMBEDDING_MODEL", "OPENAI_API_KEY",
		"LLM_PROVIDER", "LLM_MODEL", "OPENROUTER_API_KEY", "OPENROUTER_BASE_URL",
		"OLLAMA_BASE_URL", "TEMPERATURE", "MAX_TOKENS", "TOP_K_RESULTS",
		"SIMILARITY_THRESHOLD", "CHUNK_SIZE", "CHUNK_OVERLAP",
		"CHATTY_STORE", "DATABASE_URL", "CHATTY_DATA_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_API_KEY", "or-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/chatty")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EmbeddingProviderOpenAI, cfg.EmbeddingProvider)
	assert.Equal(t, DefaultEmbeddingModel, cfg.EmbeddingModel)
	assert.Equal(t, LLMProviderOpenRouter, cfg.LLMProvider)
	assert.Equal(t, DefaultLLMModel, cfg.LLMModel)
	assert.Equal(t, DefaultOpenRouterBaseURL, cfg.OpenRouterBaseURL)
	assert.InDelta(t, DefaultTemperature, cfg.Temperature, 1e-9)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultTopK, cfg.TopK)
	assert.InDelta(t, DefaultSimilarityThreshold, cfg.SimilarityThreshold, 1e-9)
	assert.Equal(t, DefaultChunkSize, cfg.ChunkSize)
	assert.Equal(t, DefaultChunkOverlap, cfg.ChunkOverlap)
	assert.Equal(t, StorePostgres, cfg.Store)
}

func TestLoad_CollectsEveryMissingVariable(t *testing.T) {
	clearEnv(t)
	// openai + openrouter + postgres all selected by default, all
	// missing their credentials: every one must be reported at once.

	_, err := Load()
	require.Error(t, err)

	var cerr *domain.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	assert.Contains(t, cerr.Missing, "OPENAI_API_KEY")
	assert.Contains(t, cerr.Missing, "OPENROUTER_API_KEY")
	assert.Contains(t, cerr.Missing, "DATABASE_URL")
}

func TestLoad_CollectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_API_KEY", "or-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/chatty")
	t.Setenv("CHUNK_SIZE", "abc")
	t.Setenv("SIMILARITY_THRESHOLD", "1.5")
	t.Setenv("TOP_K_RESULTS", "0")

	_, err := Load()
	require.Error(t, err)

	var cerr *domain.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Invalid, 3)
	assert.Contains(t, cerr.Invalid[0], "CHUNK_SIZE")
}

func TestLoad_OverlapMustBeSmallerThanSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENROUTER_API_KEY", "or-test")
	t.Setenv("DATABASE_URL", "postgres://localhost/chatty")
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	_, err := Load()
	require.Error(t, err)

	var cerr *domain.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Invalid, 1)
	assert.Contains(t, cerr.Invalid[0], "CHUNK_OVERLAP")
}

func TestLoad_OllamaNeedsNoCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "ollama")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("CHATTY_STORE", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, EmbeddingProviderOllama, cfg.EmbeddingProvider)
	assert.Equal(t, LLMProviderOllama, cfg.LLMProvider)
	assert.Equal(t, StoreSQLite, cfg.Store)
}

func TestLoad_RejectsUnknownProviders(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "azure")
	t.Setenv("LLM_PROVIDER", "bedrock")
	t.Setenv("CHATTY_STORE", "redis")

	_, err := Load()
	require.Error(t, err)

	var cerr *domain.ConfigurationError
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Invalid, 3)
	assert.Contains(t, cerr.Invalid[0], "EMBEDDING_PROVIDER")
	assert.Contains(t, cerr.Invalid[1], "LLM_PROVIDER")
	assert.Contains(t, cerr.Invalid[2], "CHATTY_STORE")
}
