package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the current configuration",
	Long: `Show the current configuration: the Notion registry, web search, LLM
provider and history settings. Secrets are masked.

Edit the settings file directly to change values; 'kotae auth' stores the
Notion credentials.`,
	RunE: runSettingsShow,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings are not available")
	}

	settings := settingsStore.Settings()

	cmd.Printf("Settings file: %s\n", settingsStore.Path())
	cmd.Println()

	cmd.Println("[notion]")
	cmd.Printf("  Token: %s\n", maskSecret(settings.Notion.Token))
	if settings.Notion.RegistryDatabaseID != "" {
		cmd.Printf("  Registry database: %s\n", settings.Notion.RegistryDatabaseID)
	} else {
		cmd.Println("  Registry database: (not set)")
	}
	cmd.Println()

	cmd.Println("[websearch]")
	if settings.WebSearch.APIKey != "" && settings.WebSearch.EngineID != "" {
		cmd.Printf("  API key: %s\n", maskSecret(settings.WebSearch.APIKey))
		cmd.Printf("  Engine: %s\n", settings.WebSearch.EngineID)
	} else {
		cmd.Println("  (not configured)")
	}
	cmd.Println()

	cmd.Println("[llm]")
	if settings.LLM.Provider != "" {
		cmd.Printf("  Provider: %s\n", settings.LLM.Provider)
		if settings.LLM.Model != "" {
			cmd.Printf("  Model: %s\n", settings.LLM.Model)
		}
		if settings.LLM.APIKey != "" {
			cmd.Printf("  API key: %s\n", maskSecret(settings.LLM.APIKey))
		}
	} else {
		cmd.Println("  (not configured)")
	}
	cmd.Println()

	cmd.Println("[history]")
	if settings.History.Disabled {
		cmd.Println("  Disabled: yes")
	} else {
		cmd.Println("  Disabled: no")
	}

	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings are not available")
	}

	cmd.Println(settingsStore.Path())
	return nil
}

// maskSecret hides all but the edges of a credential.
func maskSecret(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
