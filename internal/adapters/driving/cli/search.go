package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

var (
	searchCaseSensitive bool
	searchWholeWord     bool
	searchJSON          bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search pages and blocks",
	Long: `Finds every occurrence of the query in block contents and page titles
of non-archived pages. Matching is an exact substring match; by default it
ignores case and word boundaries.

Results are grouped by page. Title matches are listed first within a page.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVarP(&searchCaseSensitive, "case-sensitive", "c", false, "match case exactly")
	searchCmd.Flags().BoolVarP(&searchWholeWord, "whole-word", "w", false, "only match whole words")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}

	opts := searchOptions(cmd)
	resp, err := searchService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputJSON(cmd, resp)
	}
	return outputSearchText(cmd, resp)
}

// searchOptions starts from the configured defaults; explicit flags win.
func searchOptions(cmd *cobra.Command) domain.SearchOptions {
	var opts domain.SearchOptions
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			opts = settings.Search.Options()
		}
	}

	if cmd.Flags().Changed("case-sensitive") {
		opts.CaseSensitive = searchCaseSensitive
	}
	if cmd.Flags().Changed("whole-word") {
		opts.WholeWord = searchWholeWord
	}
	return opts
}

func outputSearchText(cmd *cobra.Command, resp *domain.SearchResponse) error {
	if resp.TotalMatches == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Printf("%d matches in %d pages\n", resp.TotalMatches, len(resp.Groups))
	for _, group := range resp.Groups {
		cmd.Println()
		cmd.Printf("%s (%s)\n", pageLabel(group.PageTitle, group.PageIcon), group.PageID)
		for i := range group.Matches {
			m := &group.Matches[i]
			if m.IsTitle() {
				cmd.Printf("  [%s] %s\n", m.BlockType, m.Snippet)
				continue
			}
			cmd.Printf("  [%s] %s  %s\n", m.BlockType, m.BlockID, m.Snippet)
		}
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func pageLabel(title string, icon *string) string {
	if title == "" {
		title = "Untitled"
	}
	if icon != nil && *icon != "" {
		return *icon + " " + title
	}
	return title
}
