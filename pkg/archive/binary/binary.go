// Package binary implements the plain file-per-field archive backend.
// Each field payload is stored verbatim in its own file; a JSON table
// records sizes and SHA-256 checksums, verified on every read, along
// with the dataset's meta information.
package binary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/gridbox/pkg/archive"
	"github.com/arthur-debert/gridbox/pkg/errors"
	"github.com/arthur-debert/gridbox/pkg/internal/hashutil"
	"github.com/arthur-debert/gridbox/pkg/logging"
	"github.com/arthur-debert/gridbox/pkg/metainfo"
)

// Name is the format name this backend registers under
const Name = "binary"

// Options parameterizes the on-disk layout. The compressed backend
// reuses this implementation with its own table file and extension.
type Options struct {
	// Name is the format name recorded in errors and logs
	Name string

	// TableFile is the JSON field table file name inside the dataset dir
	TableFile string

	// Extension is appended to field names for payload files
	Extension string
}

// fieldEntry is one row of the persisted field table
type fieldEntry struct {
	File     string `json:"file"`
	Size     int64  `json:"size"`
	Checksum string `json:"checksum"`
}

// archiveTable is the persisted JSON document: the field table plus
// dataset-level meta information.
type archiveTable struct {
	MetaInfo *metainfo.MetaInfo    `json:"meta_info"`
	Fields   map[string]fieldEntry `json:"fields"`
}

type binaryArchive struct {
	opts   Options
	dir    string
	mode   archive.OpenMode
	table  map[string]fieldEntry
	meta   *metainfo.MetaInfo
	closed bool
}

func init() {
	archive.MustRegister(Name, New)
}

// New opens a binary archive rooted at dir. It is the factory
// registered for the "binary" format.
func New(dir string, mode archive.OpenMode) (archive.Archive, error) {
	return OpenWithOptions(dir, mode, Options{
		Name:      Name,
		TableFile: "ArchiveMetaData-binary.json",
		Extension: ".dat",
	})
}

// OpenWithOptions opens a file-per-field archive with a custom layout
func OpenWithOptions(dir string, mode archive.OpenMode, opts Options) (archive.Archive, error) {
	a := &binaryArchive{
		opts:  opts,
		dir:   dir,
		mode:  mode,
		table: make(map[string]fieldEntry),
		meta:  metainfo.New(),
	}

	switch mode {
	case archive.ModeRead:
		if err := a.loadTable(); err != nil {
			return nil, err
		}

	case archive.ModeWrite:
		// Fresh table; existing field files are superseded as they
		// are rewritten.
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrArchiveOpen,
				"cannot create dataset directory %s", dir)
		}

	case archive.ModeAppend:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, errors.ErrArchiveOpen,
				"cannot create dataset directory %s", dir)
		}
		// Keep existing fields when the table is already there.
		if _, err := os.Stat(a.tablePath()); err == nil {
			if err := a.loadTable(); err != nil {
				return nil, err
			}
		}

	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown open mode %d", mode)
	}

	return a, nil
}

func (a *binaryArchive) Name() string {
	return a.opts.Name
}

func (a *binaryArchive) Write(field string, data []byte) error {
	if a.closed {
		return errors.Newf(errors.ErrArchiveClosed, "archive at %s is closed", a.dir)
	}
	if a.mode == archive.ModeRead {
		return errors.Newf(errors.ErrArchiveWrite,
			"archive at %s is opened read-only", a.dir)
	}
	if err := validateFieldName(field); err != nil {
		return err
	}

	file := field + a.opts.Extension

	if err := os.WriteFile(filepath.Join(a.dir, file), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite,
			"cannot write field '%s'", field)
	}

	a.table[field] = fieldEntry{
		File:     file,
		Size:     int64(len(data)),
		Checksum: hashutil.Checksum(data),
	}

	// Persist the table eagerly so a crash never leaves orphaned
	// payloads unreachable.
	if err := a.saveTable(); err != nil {
		return err
	}

	logger := logging.GetLogger("archive." + a.opts.Name)
	logger.Trace().
		Str("field", field).
		Int("bytes", len(data)).
		Msg("Wrote field")

	return nil
}

func (a *binaryArchive) Read(field string) ([]byte, error) {
	if a.closed {
		return nil, errors.Newf(errors.ErrArchiveClosed, "archive at %s is closed", a.dir)
	}

	entry, ok := a.table[field]
	if !ok {
		return nil, errors.Newf(errors.ErrFieldNotFound,
			"field '%s' not found in archive at %s", field, a.dir)
	}

	data, err := os.ReadFile(filepath.Join(a.dir, entry.File))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveRead,
			"cannot read field '%s'", field)
	}

	if int64(len(data)) != entry.Size {
		return nil, errors.Newf(errors.ErrChecksumMismatch,
			"field '%s' size mismatch: got %d bytes, table says %d",
			field, len(data), entry.Size)
	}

	if !hashutil.Verify(data, entry.Checksum) {
		return nil, errors.Newf(errors.ErrChecksumMismatch,
			"field '%s' checksum mismatch", field).
			WithDetail("file", entry.File)
	}

	return data, nil
}

func (a *binaryArchive) Fields() ([]string, error) {
	if a.closed {
		return nil, errors.Newf(errors.ErrArchiveClosed, "archive at %s is closed", a.dir)
	}

	fields := make([]string, 0, len(a.table))
	for field := range a.table {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields, nil
}

func (a *binaryArchive) MetaInfo() *metainfo.MetaInfo {
	return a.meta
}

func (a *binaryArchive) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	if a.mode != archive.ModeRead {
		return a.saveTable()
	}
	return nil
}

func (a *binaryArchive) tablePath() string {
	return filepath.Join(a.dir, a.opts.TableFile)
}

func (a *binaryArchive) loadTable() error {
	data, err := os.ReadFile(a.tablePath())
	if err != nil {
		return errors.Wrapf(err, errors.ErrArchiveOpen,
			"cannot read field table at %s", a.tablePath())
	}

	var doc archiveTable
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveOpen,
			"corrupt field table at %s", a.tablePath())
	}

	if doc.Fields != nil {
		a.table = doc.Fields
	}
	if doc.MetaInfo != nil {
		a.meta = doc.MetaInfo
	}
	return nil
}

func (a *binaryArchive) saveTable() error {
	doc := archiveTable{MetaInfo: a.meta, Fields: a.table}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrArchiveWrite, "cannot encode field table")
	}

	if err := os.WriteFile(a.tablePath(), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrArchiveWrite,
			"cannot write field table at %s", a.tablePath())
	}
	return nil
}

// validateFieldName rejects names that would escape the dataset
// directory or collide with the field table.
func validateFieldName(field string) error {
	if field == "" {
		return errors.New(errors.ErrInvalidInput, "field name cannot be empty")
	}
	if strings.ContainsAny(field, "/\\") || field == "." || field == ".." {
		return errors.Newf(errors.ErrInvalidInput,
			"field name '%s' must not contain path separators", field)
	}
	return nil
}
