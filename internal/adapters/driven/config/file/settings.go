package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// settingsFile is the settings file name inside the config directory.
const settingsFile = "config.toml"

// Settings is the full application configuration, persisted as TOML.
type Settings struct {
	Notion    NotionSettings    `toml:"notion"`
	Search    SearchSettings    `toml:"search"`
	WebSearch WebSearchSettings `toml:"websearch"`
	LLM       LLMSettings       `toml:"llm"`
	Server    ServerSettings    `toml:"server"`
	History   HistorySettings   `toml:"history"`
}

// NotionSettings configures the knowledge store and the source registry.
type NotionSettings struct {
	// Token is the integration token.
	Token string `toml:"token"`

	// RegistryDatabaseID is the database holding the source registry.
	RegistryDatabaseID string `toml:"registry_database_id"`

	// Registry property names. Empty values fall back to the defaults
	// Name / URL / Description / Enabled.
	NameProperty    string `toml:"name_property"`
	LocatorProperty string `toml:"locator_property"`
	HintProperty    string `toml:"hint_property"`
	EnabledProperty string `toml:"enabled_property"`
}

// SearchSettings configures retrieval behaviour.
type SearchSettings struct {
	// TitleQueryLimit caps primary hits per source (default: 5).
	TitleQueryLimit int `toml:"title_query_limit"`

	// ScanRecordBudget caps records scanned per source during the keyword
	// fallback (default: 100).
	ScanRecordBudget int `toml:"scan_record_budget"`

	// SourceTimeoutSeconds bounds each per-source request (default: 15;
	// negative disables the deadline).
	SourceTimeoutSeconds int `toml:"source_timeout_seconds"`

	// ExtraStopWords extends the built-in keyword stop list.
	ExtraStopWords []string `toml:"extra_stop_words"`
}

// WebSearchSettings configures the web search provider.
type WebSearchSettings struct {
	APIKey   string `toml:"api_key"`
	EngineID string `toml:"engine_id"`
}

// LLMSettings configures the generation provider.
type LLMSettings struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
}

// ServerSettings configures the HTTP API server.
type ServerSettings struct {
	Addr string `toml:"addr"`
}

// HistorySettings configures the local search history.
type HistorySettings struct {
	// Disabled turns history recording off.
	Disabled bool `toml:"disabled"`

	// Path overrides the history database location.
	Path string `toml:"path"`
}

// DefaultSettings returns the settings used when no file exists.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{Addr: "127.0.0.1:8765"},
	}
}

// SettingsStore loads and persists Settings from a TOML file in the kotae
// config directory.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
	settings Settings
}

// NewSettingsStore creates a settings store rooted at configDir.
// If configDir is empty, defaults to ~/.kotae.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".kotae")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	s := &SettingsStore{
		filePath: filepath.Join(configDir, settingsFile),
		settings: DefaultSettings(),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Settings returns a copy of the current settings.
func (s *SettingsStore) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Update applies fn to the settings and persists the result.
func (s *SettingsStore) Update(fn func(*Settings)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.settings)
	return s.save()
}

// Save persists the current settings to disk.
func (s *SettingsStore) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// save writes the settings file (caller must hold lock).
func (s *SettingsStore) save() error {
	data, err := toml.Marshal(s.settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Write with restricted permissions: the file carries API tokens.
	return os.WriteFile(s.filePath, data, 0600)
}

// Load reads the settings file. A missing file leaves the defaults in place
// and returns the os.IsNotExist error for the caller to inspect.
func (s *SettingsStore) Load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	loaded := DefaultSettings()
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	s.mu.Lock()
	s.settings = loaded
	s.mu.Unlock()
	return nil
}

// Watch reloads the settings whenever the file changes on disk, calling
// onChange with the fresh settings. The watcher stops when ctx is cancelled.
func (s *SettingsStore) Watch(ctx context.Context, onChange func(Settings)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}

	// Watch the directory rather than the file: editors replace files on
	// save, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch config directory: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != s.filePath || !event.Op.Has(fsnotify.Write|fsnotify.Create) {
					continue
				}
				if err := s.Load(); err != nil {
					logger.Warn("reload settings: %v", err)
					continue
				}
				logger.Debug("settings reloaded from %s", s.filePath)
				if onChange != nil {
					onChange(s.Settings())
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("settings watcher: %v", err)
			}
		}
	}()

	return nil
}

// Path returns the settings file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}
