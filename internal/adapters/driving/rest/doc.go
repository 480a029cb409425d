// Package rest exposes the formbridge API over HTTP.
//
// The surface is small: doctype metadata reads, link-option reads, and
// the sync endpoint that accepts schema-validated submissions. Every
// route except the health check is bearer-protected; tokens are
// verified per request against the identity provider. Domain errors
// map to stable machine-checkable error kinds in JSON bodies, and a
// recovery middleware keeps handler panics from taking the process
// down.
package rest
