// Package testutil provides helpers for tests that need populated
// archive datasets on disk.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gridbox/pkg/archive"
)

// TempDataset returns a path for a dataset directory under a test-scoped
// temporary directory. The directory itself is not created; archive
// backends create it on open.
func TempDataset(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "dataset")
}

// WriteFields creates an archive of the given format at dir and writes
// every field in fields. The archive is closed before returning.
func WriteFields(t *testing.T, format, dir string, fields map[string][]byte) {
	t.Helper()

	a, err := archive.Open(format, dir, archive.ModeWrite)
	require.NoError(t, err)
	for name, data := range fields {
		require.NoError(t, a.Write(name, data))
	}
	require.NoError(t, a.Close())
}

// ReadField opens an archive of the given format read-only and returns
// the payload of a single field.
func ReadField(t *testing.T, format, dir, field string) []byte {
	t.Helper()

	a, err := archive.Open(format, dir, archive.ModeRead)
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Close()) }()

	data, err := a.Read(field)
	require.NoError(t, err)
	return data
}
