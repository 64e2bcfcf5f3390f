package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

func TestSettingsShow_Defaults(t *testing.T) {
	setupTestServices(t)

	out, err := executeCommand(t, "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "Snippet context: 40")
	assert.Contains(t, out, "Case sensitive:  false")
	assert.Contains(t, out, "Data directory:  (default)")
}

func TestSettingsSet_PersistsValue(t *testing.T) {
	env := setupTestServices(t)

	out, err := executeCommand(t, "settings", "set", "search.snippet_context", "12")
	require.NoError(t, err)
	assert.Contains(t, out, "Set search.snippet_context = 12")

	_, err = executeCommand(t, "settings", "set", "search.case_sensitive", "true")
	require.NoError(t, err)

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, 12, settings.Search.SnippetContext)
	assert.True(t, settings.Search.CaseSensitive)

	out, err = executeCommand(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Snippet context: 12")
}

func TestSettingsSet_RejectsBadInput(t *testing.T) {
	setupTestServices(t)

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.limit", "10"},
		{"negative context", "search.snippet_context", "-1"},
		{"non numeric context", "search.snippet_context", "many"},
		{"bad bool", "log.verbose", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(t, "settings", "set", tt.key, tt.value)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsReset(t *testing.T) {
	env := setupTestServices(t)

	_, err := executeCommand(t, "settings", "set", "search.whole_word", "true")
	require.NoError(t, err)

	out, err := executeCommand(t, "settings", "reset")
	require.NoError(t, err)
	assert.Contains(t, out, "Settings restored to defaults.")

	settings, err := env.settings.Get()
	require.NoError(t, err)
	assert.Equal(t, env.settings.GetDefaults(), *settings)
}

func TestApplySetting_DataDirTrimmed(t *testing.T) {
	settings := domain.DefaultAppSettings()

	require.NoError(t, applySetting(&settings, "storage.data_dir", "  /tmp/notes  "))

	assert.Equal(t, "/tmp/notes", settings.Storage.DataDir)
}
