package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change search defaults, the data directory and logging.

Settings are stored in config.toml inside the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  search.snippet_context  bytes of context around each match (integer >= 0)
  search.case_sensitive   default for --case-sensitive (true/false)
  search.whole_word       default for --whole-word (true/false)
  storage.data_dir        directory holding bismuth.db
  log.verbose             always print debug output (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd, settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()
	cmd.Println("[Search]")
	cmd.Printf("  Snippet context: %d\n", settings.Search.SnippetContext)
	cmd.Printf("  Case sensitive:  %t\n", settings.Search.CaseSensitive)
	cmd.Printf("  Whole word:      %t\n", settings.Search.WholeWord)
	cmd.Println()
	cmd.Println("[Storage]")
	cmd.Printf("  Data directory:  %s\n", dataDir)
	cmd.Println()
	cmd.Println("[Log]")
	cmd.Printf("  Verbose:         %t\n", settings.Log.Verbose)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := applySetting(settings, args[0], args[1]); err != nil {
		return err
	}

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Set %s = %s\n", args[0], args[1])
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	if err := settingsService.Reset(); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

// applySetting parses value for key into settings.
func applySetting(settings *domain.AppSettings, key, value string) error {
	switch key {
	case "search.snippet_context":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		settings.Search.SnippetContext = n
	case "search.case_sensitive":
		return parseBoolSetting(key, value, &settings.Search.CaseSensitive)
	case "search.whole_word":
		return parseBoolSetting(key, value, &settings.Search.WholeWord)
	case "storage.data_dir":
		settings.Storage.DataDir = strings.TrimSpace(value)
	case "log.verbose":
		return parseBoolSetting(key, value, &settings.Log.Verbose)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	return nil
}

func parseBoolSetting(key, value string, dst *bool) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
	}
	*dst = b
	return nil
}
