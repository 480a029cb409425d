// Package driving defines the interfaces through which the outside
// world drives the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// The REST adapter and CLI depend on these interfaces; core services
// implement them.
//
//   - MetadataService: doctype definitions, listings, link options
//   - SubmissionService: schema-validated form submission
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driving
