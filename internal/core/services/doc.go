// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The submission coordinator is the one piece with real invariants:
// no submission is ever forwarded upstream against a schema whose
// fingerprint it was not validated against.
package services
