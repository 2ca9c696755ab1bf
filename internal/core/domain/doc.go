// Package domain defines the core business entities for the advisor
// pipeline.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A knowledge-base excerpt with a citation label
//   - QueryAnalysis: The safeguard tier and topic assigned to a query
//   - SafeguardRules: The versioned keyword rule table for classification
//   - ResponseEnvelope: The shaped answer returned to the caller
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
