package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the enabled knowledge sources",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	if registryService == nil {
		return errors.New("sources are not configured. Run 'kotae auth set-token' to store your Notion token")
	}

	sources, err := registryService.EnabledSources(cmd.Context())
	if err != nil {
		return err
	}

	if len(sources) == 0 {
		cmd.Println("No enabled sources in the registry.")
		return nil
	}

	for _, s := range sources {
		cmd.Printf("  %s  %s\n", s.ID, s.Name)
		if s.UsageHint != "" {
			cmd.Printf("      %s\n", s.UsageHint)
		}
	}

	return nil
}
