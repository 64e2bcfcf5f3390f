// Package cli implements the bismuth command line interface on cobra.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
	"github.com/custodia-labs/bismuth/internal/logger"
)

// version is set at build time or through SetVersion.
var version = "dev"

// Services bundles the driving ports used by the commands.
type Services struct {
	Search   driving.SearchService
	Page     driving.PageService
	Block    driving.BlockService
	Export   driving.ExportService
	Import   driving.ImportService
	Settings driving.SettingsService
}

// GlobalOptions carries the persistent flags to the bootstrap function.
type GlobalOptions struct {
	Verbose   bool
	DataDir   string
	ConfigDir string
}

// Bootstrap builds services once flags are parsed. The returned closer
// runs after the command finishes.
type Bootstrap func(opts GlobalOptions) (*Services, func() error, error)

var (
	searchService   driving.SearchService
	pageService     driving.PageService
	blockService    driving.BlockService
	exportService   driving.ExportService
	importService   driving.ImportService
	settingsService driving.SettingsService
)

var (
	bootstrap Bootstrap
	closer    func() error
	globals   GlobalOptions
)

var rootCmd = &cobra.Command{
	Use:   "bismuth",
	Short: "Search and edit your notes from the terminal",
	Long: `Bismuth stores pages and blocks in a local SQLite database and provides
exact substring search with find and replace across all of them.

Pages form a tree; each page holds ordered, typed blocks (text, headings,
lists, todos, code, quotes, page links). Search scans every block and every
page title and groups the matches by page.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globals.Verbose, "verbose", "v", false, "print debug output to stderr")
	flags.StringVar(&globals.DataDir, "data-dir", "", "directory holding bismuth.db (default ~/.bismuth/data)")
	flags.StringVar(&globals.ConfigDir, "config-dir", "", "directory holding config.toml (default ~/.bismuth)")
}

// RootCommand returns the root command for execution.
func RootCommand() *cobra.Command {
	return rootCmd
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects ready-made services, bypassing Bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	searchService = s.Search
	pageService = s.Page
	blockService = s.Block
	exportService = s.Export
	importService = s.Import
	settingsService = s.Settings
}

// SetBootstrap registers the function that builds services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(globals.Verbose)

	if bootstrap == nil || searchService != nil {
		return nil
	}

	services, closeFn, err := bootstrap(globals)
	if err != nil {
		return fmt.Errorf("starting bismuth: %w", err)
	}
	SetServices(services)
	closer = closeFn

	if settingsService != nil && !globals.Verbose {
		if settings, err := settingsService.Get(); err == nil && settings.Log.Verbose {
			logger.SetVerbose(true)
		}
	}
	return nil
}

func teardownServices(_ *cobra.Command, _ []string) error {
	if closer == nil {
		return nil
	}
	err := closer()
	closer = nil
	return err
}

// errNotConfigured reports a missing service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// Shutdown releases what Bootstrap opened. It is safe to call more than once.
func Shutdown() error {
	return teardownServices(nil, nil)
}
