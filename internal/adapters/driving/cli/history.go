package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("search history is not available")
	}

	entries, err := historyService.Recent(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		cmd.Println("No searches recorded yet.")
		return nil
	}

	for _, e := range entries {
		marker := " "
		if e.FallbackUsed {
			marker = "*"
		}
		cmd.Printf("  %s %s  %s (%d results, %s)\n",
			marker, e.At.Format("2006-01-02 15:04"), e.Query, e.Results,
			e.Elapsed.Round(time.Millisecond))
	}
	cmd.Println()
	cmd.Println("  * keyword fallback used")

	return nil
}
