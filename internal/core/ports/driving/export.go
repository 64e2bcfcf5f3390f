package driving

import "context"

// ExportService renders pages to portable formats.
type ExportService interface {
	// Markdown renders a page and its blocks as Markdown with a YAML
	// front matter header describing the page.
	Markdown(ctx context.Context, pageID string) (string, error)
}
