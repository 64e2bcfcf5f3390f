package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

var (
	blockJSON     bool
	blockKind     string
	blockParent   string
	blockChecked  bool
	blockLanguage string
	blockLink     string
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Manage the blocks of a page",
	Long:  `Add, edit, reorder and delete the ordered content blocks of a page.`,
}

var blockAddCmd = &cobra.Command{
	Use:   "add [page-id] [content]",
	Short: "Append a block to a page",
	Long: `Append a block after the last block with the same parent.

Block types: ` + blockKindList() + `

todo blocks take --checked, code blocks take --language, sub_page and
page_link blocks require --link with the target page id.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBlockAdd,
}

var blockListCmd = &cobra.Command{
	Use:   "list [page-id]",
	Short: "List the blocks of a page in order",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlockList,
}

var blockGetCmd = &cobra.Command{
	Use:   "get [block-id]",
	Short: "Show a block",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlockGet,
}

var blockUpdateCmd = &cobra.Command{
	Use:   "update [block-id] [content]",
	Short: "Replace the content of a block",
	Args:  cobra.ExactArgs(2),
	RunE:  runBlockUpdate,
}

var blockReorderCmd = &cobra.Command{
	Use:   "reorder [block-id] [position]",
	Short: "Move a block among its siblings (0 is first)",
	Args:  cobra.ExactArgs(2),
	RunE:  runBlockReorder,
}

var blockDeleteCmd = &cobra.Command{
	Use:   "delete [block-id]",
	Short: "Delete a block and its nested blocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runBlockDelete,
}

func init() {
	blockAddCmd.Flags().StringVarP(&blockKind, "type", "t", string(domain.BlockKindText), "block type")
	blockAddCmd.Flags().StringVar(&blockParent, "parent", "", "nest under this block id")
	blockAddCmd.Flags().BoolVar(&blockChecked, "checked", false, "mark a todo block as done")
	blockAddCmd.Flags().StringVar(&blockLanguage, "language", "", "language of a code block")
	blockAddCmd.Flags().StringVar(&blockLink, "link", "", "target page id of a sub_page or page_link block")

	for _, c := range []*cobra.Command{blockAddCmd, blockListCmd, blockGetCmd, blockUpdateCmd, blockReorderCmd} {
		c.Flags().BoolVar(&blockJSON, "json", false, "output as JSON")
	}

	blockCmd.AddCommand(blockAddCmd, blockListCmd, blockGetCmd, blockUpdateCmd, blockReorderCmd, blockDeleteCmd)
	rootCmd.AddCommand(blockCmd)
}

func blockKindList() string {
	kinds := domain.BlockKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

func runBlockAdd(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errNotConfigured("block")
	}

	kind, err := domain.ParseBlockKind(blockKind)
	if err != nil {
		return err
	}
	typ := domain.BlockType{Kind: kind, Checked: blockChecked, Language: blockLanguage, PageID: blockLink}

	content := ""
	if len(args) > 1 {
		content = args[1]
	}

	var parentID *string
	if blockParent != "" {
		parent := blockParent
		parentID = &parent
	}

	block, err := blockService.Create(cmd.Context(), args[0], typ, content, parentID)
	if err != nil {
		return fmt.Errorf("failed to add block: %w", err)
	}
	return outputBlock(cmd, block)
}

func runBlockList(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errNotConfigured("block")
	}
	blocks, err := blockService.ListByPage(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list blocks: %w", err)
	}

	if blockJSON {
		return outputJSON(cmd, blocks)
	}
	if len(blocks) == 0 {
		cmd.Println("No blocks found.")
		return nil
	}

	for _, line := range blockTree(blocks) {
		b := line.block
		cmd.Printf("%s%s  [%s] %s\n", strings.Repeat("  ", line.depth), b.ID, b.Type.Label(), b.Content)
	}
	return nil
}

func runBlockGet(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errNotConfigured("block")
	}
	block, err := blockService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get block: %w", err)
	}
	return outputBlock(cmd, block)
}

func runBlockUpdate(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errNotConfigured("block")
	}
	block, err := blockService.UpdateContent(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to update block: %w", err)
	}
	return outputBlock(cmd, block)
}

func runBlockReorder(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errNotConfigured("block")
	}
	position, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: position %q is not a number", domain.ErrInvalidInput, args[1])
	}
	block, err := blockService.Reorder(cmd.Context(), args[0], position)
	if err != nil {
		return fmt.Errorf("failed to reorder block: %w", err)
	}
	return outputBlock(cmd, block)
}

func runBlockDelete(cmd *cobra.Command, args []string) error {
	if blockService == nil {
		return errNotConfigured("block")
	}
	if err := blockService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}
	cmd.Printf("Deleted block %s\n", args[0])
	return nil
}

func outputBlock(cmd *cobra.Command, block *domain.Block) error {
	if blockJSON {
		return outputJSON(cmd, block)
	}

	cmd.Printf("[%s] %s\n", block.Type.Label(), block.Content)
	cmd.Printf("  ID:     %s\n", block.ID)
	cmd.Printf("  Page:   %s\n", block.PageID)
	if block.ParentID != nil {
		cmd.Printf("  Parent: %s\n", *block.ParentID)
	}
	if block.Type.ReferencesPage() {
		cmd.Printf("  Link:   %s\n", block.Type.PageID)
	}
	cmd.Printf("  Order:  %d\n", block.Order)
	return nil
}

// treeLine is a block with its nesting depth.
type treeLine struct {
	block *domain.Block
	depth int
}

// blockTree orders blocks depth first, each child following its parent.
// Blocks whose parent is not in the list are treated as top-level.
func blockTree(blocks []domain.Block) []treeLine {
	known := make(map[string]bool, len(blocks))
	for i := range blocks {
		known[blocks[i].ID] = true
	}

	children := make(map[string][]*domain.Block)
	for i := range blocks {
		parent := ""
		if p := blocks[i].ParentID; p != nil && known[*p] {
			parent = *p
		}
		children[parent] = append(children[parent], &blocks[i])
	}

	lines := make([]treeLine, 0, len(blocks))
	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, b := range children[parent] {
			lines = append(lines, treeLine{block: b, depth: depth})
			walk(b.ID, depth+1)
		}
	}
	walk("", 0)
	return lines
}
