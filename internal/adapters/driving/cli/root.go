// Package cli implements the Chatty command line interface. Commands
// are thin: they parse arguments, call the driving ports and format
// output. All wiring of adapters to services happens in initServices,
// driven entirely by the environment configuration.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	embeddingollama "github.com/chatty-labs/chatty-cli/internal/adapters/driven/embedding/ollama"
	embeddingopenai "github.com/chatty-labs/chatty-cli/internal/adapters/driven/embedding/openai"
	llmollama "github.com/chatty-labs/chatty-cli/internal/adapters/driven/llm/ollama"
	"github.com/chatty-labs/chatty-cli/internal/adapters/driven/llm/openrouter"
	"github.com/chatty-labs/chatty-cli/internal/adapters/driven/storage/postgres"
	"github.com/chatty-labs/chatty-cli/internal/adapters/driven/storage/sqlite"
	"github.com/chatty-labs/chatty-cli/internal/chunking"
	"github.com/chatty-labs/chatty-cli/internal/compose"
	"github.com/chatty-labs/chatty-cli/internal/config"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driven"
	"github.com/chatty-labs/chatty-cli/internal/core/ports/driving"
	"github.com/chatty-labs/chatty-cli/internal/core/services"
	"github.com/chatty-labs/chatty-cli/internal/extractors"
	"github.com/chatty-labs/chatty-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// Services wired by initServices. Commands guard against nil so that
// tests can exercise command plumbing without a full stack.
var (
	ingestService driving.IngestService
	answerService driving.AnswerService
	closers       []io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "chatty",
	Short: "Document question answering over a private knowledge base",
	Long: `Chatty ingests PDF and Markdown documents into a vector store and
answers questions grounded in their content.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command and releases any wired adapters.
func Execute() error {
	defer closeAll()
	return rootCmd.Execute()
}

// initServices loads configuration and wires the full stack. It is
// called by every command that needs services; repeated calls are
// no-ops.
func initServices(cmd *cobra.Command) error {
	if ingestService != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	embedding, err := buildEmbedding(cfg)
	if err != nil {
		return err
	}
	closers = append(closers, embedding)
	logger.Debug("embedding provider: %s (%s, %d dimensions)",
		cfg.EmbeddingProvider, embedding.ModelName(), embedding.Dimensions())

	store, err := buildStore(cmd, cfg, embedding.Dimensions())
	if err != nil {
		return err
	}
	closers = append(closers, store)

	llm, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	closers = append(closers, llm)
	logger.Debug("generation provider: %s (%s)", cfg.LLMProvider, llm.ModelName())

	chunker, err := chunking.New(cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		return err
	}

	composer := compose.New(llm, cfg.Temperature, cfg.MaxTokens)

	ingestService = services.NewIngestService(extractors.NewDefaultRegistry(), chunker, embedding, store)
	answerService = services.NewAnswerService(embedding, store, composer, cfg.TopK, cfg.SimilarityThreshold)
	return nil
}

func buildEmbedding(cfg *config.Config) (driven.EmbeddingService, error) {
	switch cfg.EmbeddingProvider {
	case config.EmbeddingProviderOpenAI:
		return embeddingopenai.NewEmbeddingService(embeddingopenai.Config{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.EmbeddingModel,
		})
	case config.EmbeddingProviderOllama:
		return embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL: cfg.OllamaBaseURL,
			Model:   cfg.EmbeddingModel,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.EmbeddingProvider)
	}
}

func buildLLM(cfg *config.Config) (driven.LLMService, error) {
	switch cfg.LLMProvider {
	case config.LLMProviderOpenRouter:
		return openrouter.NewLLMService(openrouter.Config{
			APIKey:  cfg.OpenRouterAPIKey,
			BaseURL: cfg.OpenRouterBaseURL,
			Model:   cfg.LLMModel,
		})
	case config.LLMProviderOllama:
		return llmollama.NewLLMService(llmollama.Config{
			BaseURL: cfg.OllamaBaseURL,
			Model:   cfg.LLMModel,
		}), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}

func buildStore(cmd *cobra.Command, cfg *config.Config, dimensions int) (driven.VectorStore, error) {
	switch cfg.Store {
	case config.StorePostgres:
		return postgres.NewStore(cmd.Context(), cfg.DatabaseURL, dimensions)
	case config.StoreSQLite:
		return sqlite.NewStore(cfg.DataDir, dimensions)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// closeAll releases wired adapters in reverse order.
func closeAll() {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			logger.Warn("closing adapter: %v", err)
		}
	}
	closers = nil
}

// errNotConfigured is returned when a command runs without services,
// which only happens in tests that bypass initServices.
var errNotConfigured = errors.New("services not configured")
