package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var replaceCaseSensitive bool

var replaceCmd = &cobra.Command{
	Use:   "replace [block-id] [search] [replacement]",
	Short: "Replace text inside a block",
	Long: `Replaces every occurrence of search in the content of one block and
prints the new content. Matching ignores word boundaries. Without
--case-sensitive occurrences are found regardless of case and the rest of
the text keeps its case.`,
	Args: cobra.ExactArgs(3),
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().BoolVarP(&replaceCaseSensitive, "case-sensitive", "c", false, "match case exactly")
	rootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errNotConfigured("search")
	}

	content, err := searchService.ReplaceInBlock(cmd.Context(), args[0], args[1], args[2], replaceCaseSensitive)
	if err != nil {
		return fmt.Errorf("replace failed: %w", err)
	}

	cmd.Println(content)
	return nil
}
