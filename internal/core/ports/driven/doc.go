// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ERPGateway: All reads and writes against the upstream ERP. The
//     implementation owns session acquisition, caching, and the single
//     retry-on-expiry rule; callers never see session state.
//   - TokenVerifier: Validates caller bearer tokens against the
//     external identity provider.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
