// Package compressed implements the gzip-compressed archive backend.
// It layers gzip compression over the binary backend's file-per-field
// layout; checksums cover the compressed bytes at rest.
package compressed

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/arthur-debert/gridbox/pkg/archive"
	"github.com/arthur-debert/gridbox/pkg/archive/binary"
	"github.com/arthur-debert/gridbox/pkg/errors"
	"github.com/arthur-debert/gridbox/pkg/metainfo"
)

// Name is the format name this backend registers under
const Name = "compressed"

type compressedArchive struct {
	inner archive.Archive
}

func init() {
	archive.MustRegister(Name, New)
}

// New opens a compressed archive rooted at dir. It is the factory
// registered for the "compressed" format.
func New(dir string, mode archive.OpenMode) (archive.Archive, error) {
	inner, err := binary.OpenWithOptions(dir, mode, binary.Options{
		Name:      Name,
		TableFile: "ArchiveMetaData-compressed.json",
		Extension: ".dat.gz",
	})
	if err != nil {
		return nil, err
	}
	return &compressedArchive{inner: inner}, nil
}

func (a *compressedArchive) Name() string {
	return Name
}

func (a *compressedArchive) Write(field string, data []byte) error {
	var buf bytes.Buffer

	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite,
			"cannot compress field '%s'", field)
	}
	if err := zw.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite,
			"cannot finalize compression of field '%s'", field)
	}

	return a.inner.Write(field, buf.Bytes())
}

func (a *compressedArchive) Read(field string) ([]byte, error) {
	compressed, err := a.inner.Read(field)
	if err != nil {
		return nil, err
	}

	zr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveRead,
			"field '%s' is not valid gzip data", field)
	}
	defer func() { _ = zr.Close() }()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveRead,
			"cannot decompress field '%s'", field)
	}
	return data, nil
}

func (a *compressedArchive) Fields() ([]string, error) {
	return a.inner.Fields()
}

func (a *compressedArchive) MetaInfo() *metainfo.MetaInfo {
	return a.inner.MetaInfo()
}

func (a *compressedArchive) Close() error {
	return a.inner.Close()
}
