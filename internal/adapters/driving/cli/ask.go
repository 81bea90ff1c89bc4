package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var askShowSources bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question against the knowledge base",
	Long: `Embeds the question, retrieves the most similar chunks and generates
an answer grounded in them. When nothing relevant is stored, Chatty
says so instead of guessing.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error { return initServices(cmd) },
	RunE:    runAsk,
}

func init() {
	askCmd.Flags().BoolVarP(&askShowSources, "sources", "s", false, "show retrieved sources with similarity scores")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errNotConfigured
	}

	answer, err := answerService.Ask(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)

	if askShowSources && len(answer.Sources) > 0 {
		cmd.Println("\nSources:")
		for i, src := range answer.Sources {
			cmd.Printf("  [%d] %s (%s) similarity %.3f\n",
				i+1, src.SourceTitle(), src.SourceFilename(), src.Similarity)
		}
	}
	return nil
}
