package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question grounded on your knowledge sources",
	Long: `Retrieves grounding records from the knowledge sources (and web search when
configured), then generates an answer with the configured LLM.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answering is not configured. Set [llm] provider and api_key in the settings file")
	}

	answer, err := answerService.Answer(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Text)

	if len(answer.Knowledge) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, r := range answer.Knowledge {
			cmd.Printf("  - %s (%s)\n", r.Title, r.SourceName)
		}
	}

	return nil
}
