package services

import (
	"fmt"

	"github.com/custodia-labs/bismuth/internal/core/domain"
	"github.com/custodia-labs/bismuth/internal/core/ports/driven"
	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keySnippetContext = "search.snippet_context"
	keyCaseSensitive  = "search.case_sensitive"
	keyWholeWord      = "search.whole_word"
	keyDataDir        = "storage.data_dir"
	keyVerbose        = "log.verbose"
)

var settingKeys = []string{keySnippetContext, keyCaseSensitive, keyWholeWord, keyDataDir, keyVerbose}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings, falling back to defaults
// for keys that are not set.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()
	if s.configStore == nil {
		return &defaults, nil
	}

	settings := &domain.AppSettings{
		Search: domain.SearchSettings{
			SnippetContext: s.getSnippetContext(defaults.Search.SnippetContext),
			CaseSensitive:  s.getBool(keyCaseSensitive, defaults.Search.CaseSensitive),
			WholeWord:      s.getBool(keyWholeWord, defaults.Search.WholeWord),
		},
		Storage: domain.StorageSettings{
			DataDir: s.configStore.GetString(keyDataDir),
		},
		Log: domain.LogSettings{
			Verbose: s.getBool(keyVerbose, defaults.Log.Verbose),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if settings.Search.SnippetContext < 0 {
		return fmt.Errorf("%w: snippet context must not be negative", domain.ErrInvalidInput)
	}

	values := []struct {
		key   string
		value any
	}{
		{keySnippetContext, settings.Search.SnippetContext},
		{keyCaseSensitive, settings.Search.CaseSensitive},
		{keyWholeWord, settings.Search.WholeWord},
		{keyDataDir, settings.Storage.DataDir},
		{keyVerbose, settings.Log.Verbose},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Reset deletes every known key from the config store.
func (s *SettingsService) Reset() error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	for _, key := range settingKeys {
		if err := s.configStore.Delete(key); err != nil {
			return fmt.Errorf("reset %s: %w", key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// getSnippetContext reads the snippet context. Zero is a valid value, so
// presence is checked rather than relying on GetInt's zero default.
func (s *SettingsService) getSnippetContext(defaultVal int) int {
	if _, exists := s.configStore.Get(keySnippetContext); !exists {
		return defaultVal
	}
	if val := s.configStore.GetInt(keySnippetContext); val >= 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
