// Package frappe implements the upstream ERP connector.
//
// It speaks the Frappe resource API over HTTPS: cookie-session login,
// doctype reads, record fetches and counts, record creation, and the
// submit workflow transition. The connector owns the one shared mutable
// resource in the system, the cached login session, and the one retry
// rule: a call answered with 403 discards the session, logs in again,
// and is retried exactly once.
//
// The connector implements driven.ERPGateway and surfaces only domain
// errors; HTTP statuses and transport failures never leak past it.
package frappe
