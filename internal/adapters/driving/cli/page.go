package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bismuth/internal/core/domain"
)

var (
	pageJSON         bool
	pageExportOutput string
	pageImportParent string
)

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Manage pages",
	Long:  `Create, inspect, rename, archive and delete pages in the page tree.`,
}

var pageCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a top-level page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageCreate,
}

var pageNestedCmd = &cobra.Command{
	Use:   "nested [parent-id] [title]",
	Short: "Create a page under another page",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageNested,
}

var pageGetCmd = &cobra.Command{
	Use:   "get [page-id]",
	Short: "Show a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageGet,
}

var pageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all pages, newest first",
	Args:  cobra.NoArgs,
	RunE:  runPageList,
}

var pageRootsCmd = &cobra.Command{
	Use:   "roots",
	Short: "List top-level pages",
	Args:  cobra.NoArgs,
	RunE:  runPageRoots,
}

var pageChildrenCmd = &cobra.Command{
	Use:   "children [page-id]",
	Short: "List the pages nested under a page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageChildren,
}

var pageRenameCmd = &cobra.Command{
	Use:   "rename [page-id] [title]",
	Short: "Change the title of a page",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageRename,
}

var pageIconCmd = &cobra.Command{
	Use:   "icon [page-id] [icon]",
	Short: "Set the icon of a page (empty string clears it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageIcon,
}

var pageCoverCmd = &cobra.Command{
	Use:   "cover [page-id] [cover]",
	Short: "Set the cover image reference of a page (empty string clears it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPageCover,
}

var pageArchiveCmd = &cobra.Command{
	Use:   "archive [page-id]",
	Short: "Hide a page from listings and search",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageArchive,
}

var pageUnarchiveCmd = &cobra.Command{
	Use:   "unarchive [page-id]",
	Short: "Restore an archived page",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageUnarchive,
}

var pageDeleteCmd = &cobra.Command{
	Use:   "delete [page-id]",
	Short: "Delete a page with its sub-pages and blocks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageDelete,
}

var pageValidateCmd = &cobra.Command{
	Use:   "validate [page-id]",
	Short: "Check whether a page link target exists",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageValidate,
}

var pageExportCmd = &cobra.Command{
	Use:   "export [page-id]",
	Short: "Export a page as Markdown with YAML front matter",
	Args:  cobra.ExactArgs(1),
	RunE:  runPageExport,
}

var pageImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Create a page from a Markdown or plain text file",
	Long: `Create a page from a file. Markdown headings, lists, todos, code fences,
quotes, dividers and bismuth://pages links become typed blocks; indented
items become nested blocks. YAML front matter may set title, icon and cover.
Plain text files become one text block per paragraph.`,
	Args: cobra.ExactArgs(1),
	RunE: runPageImport,
}

func init() {
	for _, c := range []*cobra.Command{pageCreateCmd, pageNestedCmd, pageGetCmd, pageListCmd,
		pageRootsCmd, pageChildrenCmd, pageRenameCmd, pageIconCmd, pageCoverCmd,
		pageArchiveCmd, pageUnarchiveCmd, pageImportCmd} {
		c.Flags().BoolVar(&pageJSON, "json", false, "output as JSON")
	}
	pageExportCmd.Flags().StringVarP(&pageExportOutput, "output", "o", "", "write to file instead of stdout")
	pageImportCmd.Flags().StringVar(&pageImportParent, "parent", "", "nest the new page under this page id")

	pageCmd.AddCommand(pageCreateCmd, pageNestedCmd, pageGetCmd, pageListCmd, pageRootsCmd,
		pageChildrenCmd, pageRenameCmd, pageIconCmd, pageCoverCmd, pageArchiveCmd,
		pageUnarchiveCmd, pageDeleteCmd, pageValidateCmd, pageExportCmd, pageImportCmd)
	rootCmd.AddCommand(pageCmd)
}

func runPageCreate(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	page, err := pageService.Create(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	return outputPage(cmd, page)
}

func runPageNested(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	page, err := pageService.CreateNested(cmd.Context(), args[1], args[0])
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	return outputPage(cmd, page)
}

func runPageGet(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	page, err := pageService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}
	return outputPage(cmd, page)
}

func runPageList(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	pages, err := pageService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	return outputPages(cmd, pages)
}

func runPageRoots(cmd *cobra.Command, _ []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	pages, err := pageService.Roots(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	return outputPages(cmd, pages)
}

func runPageChildren(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	pages, err := pageService.Children(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}
	return outputPages(cmd, pages)
}

func runPageRename(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	page, err := pageService.UpdateTitle(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to rename page: %w", err)
	}
	return outputPage(cmd, page)
}

func runPageIcon(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	page, err := pageService.UpdateIcon(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to set icon: %w", err)
	}
	return outputPage(cmd, page)
}

func runPageCover(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	page, err := pageService.UpdateCover(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to set cover: %w", err)
	}
	return outputPage(cmd, page)
}

func runPageArchive(cmd *cobra.Command, args []string) error {
	return setArchived(cmd, args[0], true)
}

func runPageUnarchive(cmd *cobra.Command, args []string) error {
	return setArchived(cmd, args[0], false)
}

func setArchived(cmd *cobra.Command, id string, archived bool) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	page, err := pageService.SetArchived(cmd.Context(), id, archived)
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}
	return outputPage(cmd, page)
}

func runPageDelete(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	if err := pageService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete page: %w", err)
	}
	cmd.Printf("Deleted page %s\n", args[0])
	return nil
}

func runPageValidate(cmd *cobra.Command, args []string) error {
	if pageService == nil {
		return errNotConfigured("page")
	}
	ok, err := pageService.ValidateLink(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to validate link: %w", err)
	}
	if ok {
		cmd.Println("valid")
	} else {
		cmd.Println("invalid")
	}
	return nil
}

func runPageExport(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errNotConfigured("export")
	}
	doc, err := exportService.Markdown(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to export page: %w", err)
	}

	if pageExportOutput == "" {
		cmd.Print(doc)
		return nil
	}
	if err := os.WriteFile(pageExportOutput, []byte(doc), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", pageExportOutput, err)
	}
	cmd.Printf("Exported page %s to %s\n", args[0], pageExportOutput)
	return nil
}

func runPageImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	var parentID *string
	if pageImportParent != "" {
		parent := pageImportParent
		parentID = &parent
	}

	page, err := importService.Import(cmd.Context(), &domain.RawDocument{URI: args[0], Content: data}, parentID)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}
	return outputPage(cmd, page)
}

func outputPage(cmd *cobra.Command, page *domain.Page) error {
	if pageJSON {
		return outputJSON(cmd, page)
	}

	cmd.Printf("%s\n", pageLabel(page.Title, page.Icon))
	cmd.Printf("  ID:       %s\n", page.ID)
	if page.ParentID != nil {
		cmd.Printf("  Parent:   %s\n", *page.ParentID)
	}
	if page.Cover != nil {
		cmd.Printf("  Cover:    %s\n", *page.Cover)
	}
	if page.Archived {
		cmd.Println("  Archived: yes")
	}
	cmd.Printf("  Created:  %s\n", page.CreatedAt.Local().Format("2006-01-02 15:04"))
	cmd.Printf("  Updated:  %s\n", page.UpdatedAt.Local().Format("2006-01-02 15:04"))
	return nil
}

func outputPages(cmd *cobra.Command, pages []domain.Page) error {
	if pageJSON {
		return outputJSON(cmd, pages)
	}
	if len(pages) == 0 {
		cmd.Println("No pages found.")
		return nil
	}
	for i := range pages {
		cmd.Printf("%s  %s\n", pages[i].ID, pageLabel(pages[i].Title, pages[i].Icon))
	}
	return nil
}
