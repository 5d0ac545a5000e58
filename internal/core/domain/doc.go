// Package domain defines the core business entities for bizlens.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - BusinessInput: The business to investigate plus analysis options
//   - AnalysisResult: The optional, sectioned result returned by the service
//   - HistoryEntry: A summary of a previously submitted analysis
//   - AnalysisStatus: A snapshot of the submission state machine
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
