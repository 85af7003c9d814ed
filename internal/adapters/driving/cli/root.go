// Package cli implements the kotae command line interface.
package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/kotae-cli/internal/adapters/driven/ai"
	configfile "github.com/custodia-labs/kotae-cli/internal/adapters/driven/config/file"
	historysqlite "github.com/custodia-labs/kotae-cli/internal/adapters/driven/history/sqlite"
	"github.com/custodia-labs/kotae-cli/internal/adapters/driven/notion"
	"github.com/custodia-labs/kotae-cli/internal/adapters/driven/websearch/google"
	"github.com/custodia-labs/kotae-cli/internal/core/domain"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driven"
	"github.com/custodia-labs/kotae-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kotae-cli/internal/core/services"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// version is set by Execute from the build-time value in main.
var version = "dev"

// Services used by the commands. Populated by wireServices on first use;
// tests substitute mocks directly.
var (
	settingsStore   *configfile.SettingsStore
	registryService *services.RegistryService
	searchService   driving.GroundingSearch
	answerService   driving.AnswerService
	historyService  driving.HistoryService
	historyStore    driven.HistoryStore
	servicesWired   bool
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "kotae",
	Short: "Grounded answers from your Notion knowledge sources",
	Long: `Kotae searches the Notion databases registered as knowledge sources,
falls back to keyword matching for Japanese queries, and can generate an
answer grounded on the retrieved records plus web search.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	rootCmd.Version = v
	return rootCmd.Execute()
}

// preRun applies global flags and wires the real services once.
func preRun(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if servicesWired {
		return nil
	}
	return wireServices()
}

// serviceSet is the service graph built from one settings snapshot. The
// long-running commands rebuild it when the settings file changes.
type serviceSet struct {
	registry     *services.RegistryService
	search       driving.GroundingSearch
	answer       driving.AnswerService
	history      driving.HistoryService
	historyStore driven.HistoryStore
}

// wireServices builds the service graph from the settings file. Missing
// credentials leave the corresponding service nil; each command reports
// what is missing when invoked.
func wireServices() error {
	store, err := configfile.NewSettingsStore("")
	if err != nil {
		return err
	}
	settingsStore = store
	servicesWired = true

	set, err := buildServices(store.Settings())
	if err != nil {
		return err
	}
	installServices(set)
	return nil
}

// installServices publishes a service set to the package-level vars the
// commands read.
func installServices(set serviceSet) {
	registryService = set.registry
	searchService = set.search
	answerService = set.answer
	historyService = set.history
	historyStore = set.historyStore
}

// currentServiceSet snapshots the wired services.
func currentServiceSet() serviceSet {
	return serviceSet{
		registry:     registryService,
		search:       searchService,
		answer:       answerService,
		history:      historyService,
		historyStore: historyStore,
	}
}

// buildServices constructs the service graph from a settings snapshot.
func buildServices(settings configfile.Settings) (serviceSet, error) {
	var set serviceSet

	if settings.Notion.Token == "" {
		logger.Debug("no Notion token configured, retrieval disabled")
		return set, nil
	}

	notionStore, err := notion.NewStore(notion.Config{
		Token:              settings.Notion.Token,
		RegistryDatabaseID: settings.Notion.RegistryDatabaseID,
		EnabledProperty:    enabledProperty(settings),
	})
	if err != nil {
		return set, err
	}

	set.registry = services.NewRegistryService(notionStore, services.RegistryConfig{
		NameProperty:    settings.Notion.NameProperty,
		LocatorProperty: settings.Notion.LocatorProperty,
		HintProperty:    settings.Notion.HintProperty,
		EnabledProperty: settings.Notion.EnabledProperty,
	})

	rules := domain.DefaultKeywordRules()
	rules.StopWords = append(rules.StopWords, settings.Search.ExtraStopWords...)

	search := services.NewSearchService(set.registry, notionStore, rules, services.SearchConfig{
		TitleQueryLimit:  settings.Search.TitleQueryLimit,
		ScanRecordBudget: settings.Search.ScanRecordBudget,
		SourceTimeout:    time.Duration(settings.Search.SourceTimeoutSeconds) * time.Second,
	})

	if !settings.History.Disabled {
		hs, err := historysqlite.NewStore(settings.History.Path)
		if err != nil {
			logger.Warn("search history disabled: %v", err)
		} else {
			search.SetHistoryStore(hs)
			set.historyStore = hs
			set.history = services.NewHistoryService(hs)
		}
	}
	set.search = search

	var web driven.WebSearcher
	if settings.WebSearch.APIKey != "" && settings.WebSearch.EngineID != "" {
		web, err = google.NewSearcher(context.Background(), google.Config{
			APIKey:   settings.WebSearch.APIKey,
			EngineID: settings.WebSearch.EngineID,
		})
		if err != nil {
			logger.Warn("web search disabled: %v", err)
			web = nil
		}
	}

	llm, err := ai.CreateLLMService(ai.LLMSettings{
		Provider: settings.LLM.Provider,
		APIKey:   settings.LLM.APIKey,
		BaseURL:  settings.LLM.BaseURL,
		Model:    settings.LLM.Model,
	})
	if err != nil {
		logger.Warn("answer generation disabled: %v", err)
	}
	if llm != nil {
		answer := services.NewAnswerService(search, web, llm)
		if prompts, err := configfile.NewPromptStore(""); err == nil {
			answer.SetPromptStore(prompts)
		}
		set.answer = answer
	}

	return set, nil
}

// enabledProperty returns the registry checkbox property, falling back to
// the loader default so the store pre-filter and the loader agree.
func enabledProperty(settings configfile.Settings) string {
	if settings.Notion.EnabledProperty != "" {
		return settings.Notion.EnabledProperty
	}
	return services.DefaultEnabledProperty
}
