// Package mcp exposes bismuth search, find and replace, and page content
// over the Model Context Protocol so AI assistants can work with notes.
package mcp

import "errors"

var (
	// ErrMissingSearchService is returned when the search service is not provided.
	ErrMissingSearchService = errors.New("mcp: search service is required")

	// ErrMissingPageService is returned when the page service is not provided.
	ErrMissingPageService = errors.New("mcp: page service is required")
)
