// Package domain defines the core business entities for photoreport.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Item: A photo reduced to what grouping and layout need
//   - Group: Items sharing a filename-derived group key
//   - PageLayout: Placements assigned to one page of an export
//   - Report: Persisted report metadata and its photos
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
