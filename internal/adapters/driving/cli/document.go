package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage ingested documents",
	Long:  `List or delete ingested documents and inspect their chunk counts.`,
}

var documentListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List ingested documents",
	Args:    cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error { return initServices(cmd) },
	RunE:    runDocumentList,
}

var documentDeleteCmd = &cobra.Command{
	Use:     "delete [doc-id]",
	Short:   "Delete a document and all its chunks",
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error { return initServices(cmd) },
	RunE:    runDocumentDelete,
}

var documentCountCmd = &cobra.Command{
	Use:     "count [doc-id]",
	Short:   "Show the number of chunks stored for a document",
	Args:    cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error { return initServices(cmd) },
	RunE:    runDocumentCount,
}

func init() {
	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentCountCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errNotConfigured
	}

	docs, err := ingestService.ListDocuments(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Println("No documents ingested.")
		return nil
	}

	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    Title: %s\n", docs[i].Title)
		cmd.Printf("    File: %s (%d bytes)\n", docs[i].Filename, docs[i].FileSize)
		cmd.Printf("    Ingested: %s\n", docs[i].CreatedAt.Format("2006-01-02 15:04:05"))
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured
	}

	docID := args[0]
	if err := ingestService.DeleteDocument(cmd.Context(), docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Deleted document %s\n", docID)
	return nil
}

func runDocumentCount(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errNotConfigured
	}

	docID := args[0]
	count, err := ingestService.CountChunks(cmd.Context(), docID)
	if err != nil {
		return fmt.Errorf("failed to count chunks: %w", err)
	}

	cmd.Printf("Document %s has %d chunks\n", docID, count)
	return nil
}
