package archive

import (
	"fmt"

	"github.com/arthur-debert/gridbox/pkg/errors"
	"github.com/arthur-debert/gridbox/pkg/logging"
	"github.com/arthur-debert/gridbox/pkg/registry"
)

// factories is the process-wide backend table. It is populated during
// initialization (backend init functions via core.Initialize) and
// read-heavy afterwards; the registry serializes writes against reads.
var factories = registry.New[Factory]()

// Register adds a backend factory under the given format name.
// Duplicate names are rejected with ErrAlreadyExists; the first
// registration wins and stays in effect.
func Register(name string, factory Factory) error {
	if factory == nil {
		return errors.Newf(errors.ErrInvalidInput, "archive factory for '%s' cannot be nil", name)
	}

	if err := factories.Register(name, factory); err != nil {
		return err
	}

	logger := logging.GetLogger("archive.registry")
	logger.Debug().Str("archive", name).Msg("Registered archive backend")
	return nil
}

// MustRegister registers a backend factory and panics on failure.
// Backends call this from init(), where a registration error is a
// programming error.
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register archive backend %s: %v", name, err))
	}
}

// Lookup returns the factory registered under name, or ErrNotFound
func Lookup(name string) (Factory, error) {
	return factories.Get(name)
}

// Names returns a sorted snapshot of all registered backend names.
// The returned slice is freshly allocated on every call and is not
// affected by later registrations.
func Names() []string {
	return factories.List()
}

// Registered checks whether a backend is registered under name
func Registered(name string) bool {
	return factories.Has(name)
}

// Open looks up the backend registered under name and opens the
// dataset directory with it. A lookup miss is reported as an
// unsupported format, the ordinary recoverable condition a frontend
// turns into a user-facing message.
func Open(name, dir string, mode OpenMode) (Archive, error) {
	factory, err := Lookup(name)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrUnsupportedFormat,
			"unsupported archive format '%s' (registered: %v)", name, Names())
	}

	a, err := factory(dir, mode)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrArchiveOpen,
			"failed to open '%s' archive at %s", name, dir).
			WithDetail("mode", mode.String())
	}

	logger := logging.GetLogger("archive.registry")
	logger.Debug().
		Str("archive", name).
		Str("dir", dir).
		Str("mode", mode.String()).
		Msg("Opened archive")

	return a, nil
}
