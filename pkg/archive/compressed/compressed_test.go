package compressed_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/gridbox/pkg/archive"
	"github.com/arthur-debert/gridbox/pkg/archive/compressed"
	"github.com/arthur-debert/gridbox/pkg/errors"
	"github.com/arthur-debert/gridbox/pkg/testutil"
)

func TestFactoryIsRegistered(t *testing.T) {
	assert.True(t, archive.Registered(compressed.Name),
		"importing the compressed package should register its factory")
}

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	a, err := compressed.New(dir, archive.ModeWrite)
	require.NoError(t, err)
	assert.Equal(t, "compressed", a.Name())

	// Repetitive payload so compression actually shrinks it.
	payload := bytes.Repeat([]byte("0123456789abcdef"), 1024)
	require.NoError(t, a.Write("temperature", payload))
	require.NoError(t, a.Close())

	a, err = compressed.New(dir, archive.ModeRead)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	got, err := a.Read("temperature")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestOpenThroughRegistry(t *testing.T) {
	dir := testutil.TempDataset(t)

	testutil.WriteFields(t, compressed.Name, dir, map[string][]byte{
		"temperature": []byte("t data"),
		"pressure":    []byte("p data"),
	})

	assert.Equal(t, []byte("t data"), testutil.ReadField(t, compressed.Name, dir, "temperature"))
	assert.Equal(t, []byte("p data"), testutil.ReadField(t, compressed.Name, dir, "pressure"))
}

func TestPayloadIsCompressedOnDisk(t *testing.T) {
	dir := t.TempDir()

	a, err := compressed.New(dir, archive.ModeWrite)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	payload := bytes.Repeat([]byte("0123456789abcdef"), 1024)
	require.NoError(t, a.Write("temperature", payload))

	info, err := os.Stat(filepath.Join(dir, "temperature.dat.gz"))
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(len(payload)),
		"on-disk payload should be smaller than the input")
}

func TestCoexistsWithBinaryInSameDirectory(t *testing.T) {
	dir := t.TempDir()

	// Each backend keeps its own field table, so both can share a
	// dataset directory without clobbering each other.
	ca, err := compressed.New(dir, archive.ModeWrite)
	require.NoError(t, err)
	require.NoError(t, ca.Write("u", []byte("compressed u")))
	require.NoError(t, ca.Close())

	ba, err := archive.Open("binary", dir, archive.ModeWrite)
	require.NoError(t, err)
	require.NoError(t, ba.Write("u", []byte("binary u")))
	require.NoError(t, ba.Close())

	ca, err = compressed.New(dir, archive.ModeRead)
	require.NoError(t, err)
	defer func() { _ = ca.Close() }()

	got, err := ca.Read("u")
	require.NoError(t, err)
	assert.Equal(t, []byte("compressed u"), got)
}

func TestCorruptGzipData(t *testing.T) {
	dir := t.TempDir()

	a, err := compressed.New(dir, archive.ModeWrite)
	require.NoError(t, err)
	require.NoError(t, a.Write("u", []byte("data")))
	require.NoError(t, a.Close())

	// Replace the stored payload with non-gzip bytes of the same
	// length so the size check passes but decompression cannot.
	path := filepath.Join(dir, "u.dat.gz")
	info, err := os.Stat(path)
	require.NoError(t, err)
	garbage := bytes.Repeat([]byte{0x5a}, int(info.Size()))
	require.NoError(t, os.WriteFile(path, garbage, 0644))

	a, err = compressed.New(dir, archive.ModeRead)
	require.NoError(t, err)
	defer func() { _ = a.Close() }()

	_, err = a.Read("u")
	require.Error(t, err)
	// The checksum guard catches the tampering before gzip does.
	assert.True(t, errors.IsErrorCode(err, errors.ErrChecksumMismatch),
		"want ErrChecksumMismatch, got %v", err)
}
