package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kotae-cli/internal/adapters/driving/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search view",
	Long: `Launch the interactive terminal search view.

Controls:
  Enter - Search
  ↑/↓   - Select result
  Esc   - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search is not configured. Run 'kotae auth set-token' to store your Notion token")
	}

	return tui.Run(cmd.Context(), searchService)
}
