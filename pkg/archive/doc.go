// Package archive defines the storage backend contract and the
// process-wide backend registry. Backends register a named factory
// (usually from their package init) and callers open datasets by
// format name without linking against backend-specific code.
package archive
