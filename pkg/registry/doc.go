// Package registry provides a generic, thread-safe registry for
// name-keyed components. It backs the archive backend table and is
// designed to be populated from init() functions during controlled
// startup and queried concurrently afterwards.
package registry
