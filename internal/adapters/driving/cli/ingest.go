package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest documents into the knowledge base",
	Long: `Extracts text from PDF and Markdown files, splits it into chunks,
embeds each chunk and stores the result. Files are processed
independently: a failure on one file does not stop the batch.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error { return initServices(cmd) },
	RunE:    runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured
	}

	reports, err := ingestService.IngestFiles(cmd.Context(), args)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	var failed int
	for _, r := range reports {
		if r.Err != nil {
			failed++
			cmd.Printf("  FAIL %s: %v\n", r.Path, r.Err)
			continue
		}
		cmd.Printf("  OK   %s: %d chunks (document %s)\n", r.Path, r.Chunks, r.DocumentID)
	}

	cmd.Printf("\nIngested %d of %d files\n", len(reports)-failed, len(reports))
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(reports))
	}
	return nil
}
