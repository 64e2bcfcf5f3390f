// Package domain defines the core business entities for Bismuth.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Page: A hierarchical document node
//   - Block: An ordered content unit within a page
//   - BlockType: The tagged variant describing how a block renders
//   - SearchResponse: Grouped, positional matches produced by a search
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
