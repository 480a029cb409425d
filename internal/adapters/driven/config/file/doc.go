// Package file loads formbridge configuration from a TOML file.
//
// Secrets can be kept out of the file via environment overrides, and a
// watcher re-reads the file on change so upstream credentials rotate
// without a restart.
package file
