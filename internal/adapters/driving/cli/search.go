package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the registered knowledge sources",
	Long: `Searches every enabled knowledge source for records whose title contains
the query. For Japanese queries with no title match, falls back to keyword
matching over the source contents.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search is not configured. Run 'kotae auth set-token' to store your Notion token")
	}

	resp, err := searchService.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, resp)
	}
	return outputSearchTable(cmd, resp)
}

func outputSearchJSON(cmd *cobra.Command, resp *domain.SearchResponse) error {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if len(resp.Results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	if resp.FallbackUsed {
		cmd.Println("Results (keyword fallback):")
	} else {
		cmd.Println("Results:")
	}
	cmd.Println()

	for i, r := range resp.Results {
		cmd.Printf("  [%d] %s\n", i+1, r.Title)
		if r.SourceName != "" {
			cmd.Printf("      Source: %s\n", r.SourceName)
		}
		if r.Link != "" {
			cmd.Printf("      %s\n", r.Link)
		}
		cmd.Println()
	}

	return nil
}
