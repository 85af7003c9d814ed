package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/kotae-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/kotae-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/kotae-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage credentials",
	Long: `Store the credentials kotae needs in the settings file.

Examples:
  # Store the Notion integration token (prompted, no echo)
  kotae auth set-token

  # Point retrieval at the source registry database
  kotae auth set-registry https://www.notion.so/workspace/4f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c`,
}

var authSetTokenCmd = &cobra.Command{
	Use:   "set-token",
	Short: "Store the Notion integration token",
	RunE:  runAuthSetToken,
}

var authSetRegistryCmd = &cobra.Command{
	Use:   "set-registry [locator]",
	Short: "Store the source registry database",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthSetRegistry,
}

var authValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the configured LLM provider is reachable",
	RunE:  runAuthValidate,
}

func init() {
	authCmd.AddCommand(authSetTokenCmd)
	authCmd.AddCommand(authSetRegistryCmd)
	authCmd.AddCommand(authValidateCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthSetToken(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings are not available")
	}

	cmd.Print("Notion integration token: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.Println()
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return errors.New("token is empty")
	}

	if err := settingsStore.Update(func(s *configfile.Settings) {
		s.Notion.Token = token
	}); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	cmd.Printf("Token saved to %s\n", settingsStore.Path())
	return nil
}

func runAuthValidate(cmd *cobra.Command, _ []string) error {
	if settingsStore == nil {
		return errors.New("settings are not available")
	}

	settings := settingsStore.Settings()
	svc, err := ai.CreateAndValidateLLMService(ai.LLMSettings{
		Provider: settings.LLM.Provider,
		APIKey:   settings.LLM.APIKey,
		BaseURL:  settings.LLM.BaseURL,
		Model:    settings.LLM.Model,
	})
	if err != nil {
		return err
	}
	if svc == nil {
		cmd.Println("No LLM provider configured. Set [llm] provider in the settings file.")
		return nil
	}
	defer svc.Close()

	cmd.Printf("LLM provider OK: %s\n", svc.ModelName())
	return nil
}

func runAuthSetRegistry(cmd *cobra.Command, args []string) error {
	if settingsStore == nil {
		return errors.New("settings are not available")
	}

	id, err := domain.SourceIDFromLocator(args[0])
	if err != nil {
		return fmt.Errorf("registry locator: %w", err)
	}

	if err := settingsStore.Update(func(s *configfile.Settings) {
		s.Notion.RegistryDatabaseID = id
	}); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	cmd.Printf("Registry database set to %s\n", id)
	return nil
}
