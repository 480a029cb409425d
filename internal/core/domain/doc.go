// Package domain defines the core business entities for formbridge.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - DoctypeSchema: A form definition as served by the upstream ERP
//   - FieldDefinition: One field within a doctype
//   - Submission: A client-submitted form payload
//   - Fingerprint: The schema-hash algorithm over a doctype's field layout
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
