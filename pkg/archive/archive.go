package archive

import (
	"github.com/arthur-debert/gridbox/pkg/metainfo"
)

// OpenMode controls how a dataset directory is opened
type OpenMode int

const (
	// ModeRead opens an existing dataset for reading only
	ModeRead OpenMode = iota

	// ModeWrite creates or truncates a dataset for writing
	ModeWrite

	// ModeAppend opens a dataset for writing, keeping existing fields
	ModeAppend
)

// String returns the mode name used in logs and error messages
func (m OpenMode) String() string {
	switch m {
	case ModeRead:
		return "read"
	case ModeWrite:
		return "write"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// Archive is the capability every storage backend provides. An Archive
// persists named field payloads under a dataset directory and loads
// them back. Implementations are not required to be safe for
// concurrent use; callers serialize access per open archive.
type Archive interface {
	// Name returns the registered format name (e.g. "binary")
	Name() string

	// Write stores the payload for a field, replacing any previous data
	Write(field string, data []byte) error

	// Read loads the payload for a field
	Read(field string) ([]byte, error)

	// Fields returns the names of all stored fields in sorted order
	Fields() ([]string, error)

	// MetaInfo returns the dataset-level meta information. Mutations
	// through the returned map are persisted when the archive state is
	// next flushed (writes, Close).
	MetaInfo() *metainfo.MetaInfo

	// Close flushes backend state and releases resources. An archive
	// must not be used after Close.
	Close() error
}

// Factory constructs an Archive for a dataset directory. It is the
// capability stored in the backend registry; the registry never holds
// concrete backend types.
type Factory func(dir string, mode OpenMode) (Archive, error)
