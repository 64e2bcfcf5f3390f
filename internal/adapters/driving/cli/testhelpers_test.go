package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/bismuth/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bismuth/internal/core/services"
	"github.com/custodia-labs/bismuth/internal/normalisers"
)

// testEnv holds the in-memory services injected into the commands.
type testEnv struct {
	store    *memory.ContentStore
	search   *services.SearchService
	pages    *services.PageService
	blocks   *services.BlockService
	export   *services.ExportService
	imports  *services.ImportService
	settings *services.SettingsService
}

// setupTestServices wires every command to in-memory stores and restores
// the package state when the test ends.
func setupTestServices(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewContentStore()
	env := &testEnv{
		store:    store,
		search:   services.NewSearchService(store),
		pages:    services.NewPageService(store),
		blocks:   services.NewBlockService(store),
		export:   services.NewExportService(store),
		imports:  services.NewImportService(store, normalisers.Default()),
		settings: services.NewSettingsService(memory.NewConfigStore()),
	}

	SetServices(&Services{
		Search:   env.search,
		Page:     env.pages,
		Block:    env.blocks,
		Export:   env.export,
		Import:   env.imports,
		Settings: env.settings,
	})
	t.Cleanup(func() {
		SetServices(nil)
		resetFlags(rootCmd)
	})
	return env
}

// executeCommand runs the root command with args and returns everything
// written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default. cobra keeps parsed
// values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
