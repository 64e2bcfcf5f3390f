package mcp

import (
	"github.com/custodia-labs/bismuth/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Search runs find and replace.
	Search driving.SearchService

	// Page lists and resolves pages.
	Page driving.PageService

	// Block lists the blocks of a page. Optional.
	Block driving.BlockService

	// Export renders pages as Markdown. Optional.
	Export driving.ExportService
}

// Validate ensures the required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Page == nil {
		return ErrMissingPageService
	}
	return nil
}
