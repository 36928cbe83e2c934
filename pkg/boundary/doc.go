// Package boundary converts registry snapshots into ownership-transferred
// arrays of NUL-terminated strings for consumption outside the library's
// memory-management domain. Every marshalled array is a deep copy: the
// library keeps no reference to it after returning, and the caller is
// solely responsible for releasing it.
package boundary
