package boundary

import (
	"strings"

	"github.com/arthur-debert/gridbox/pkg/archive"
	"github.com/arthur-debert/gridbox/pkg/errors"
	"github.com/arthur-debert/gridbox/pkg/logging"
)

// StringArray is an ownership-transferred array of independently
// allocated, NUL-terminated strings. The caller owns every element and
// the container: it must call Release exactly once when done. Calling
// Release twice is forbidden. The library retains no reference to a
// StringArray after returning it.
type StringArray struct {
	alloc    Allocator
	elements [][]byte
	released bool
}

// Len returns the number of strings in the array. Zero is a valid
// length; an empty array still must be released.
func (a *StringArray) Len() int {
	return len(a.elements)
}

// At returns the i-th element as its raw NUL-terminated buffer
func (a *StringArray) At(i int) []byte {
	return a.elements[i]
}

// Strings returns fresh Go copies of all elements, without the
// trailing NUL. The copies stay valid after Release.
func (a *StringArray) Strings() []string {
	out := make([]string, len(a.elements))
	for i, elem := range a.elements {
		out[i] = string(elem[:len(elem)-1])
	}
	return out
}

// Release frees every element and the container itself. It must be
// called exactly once per array; a second call panics, matching the
// documented contract that double release is forbidden.
func (a *StringArray) Release() {
	if a.released {
		panic("boundary: StringArray released twice")
	}
	a.released = true

	for i, elem := range a.elements {
		a.alloc.Free(elem)
		a.elements[i] = nil
	}
	a.elements = nil
}

// Marshal deep-copies names into a StringArray backed by alloc. Each
// element is an independent NUL-terminated copy; the input slice is
// not retained. If an allocation fails partway through, everything
// allocated so far is freed before the error is reported, so a
// partial, half-owned array is never returned.
func Marshal(names []string, alloc Allocator) (*StringArray, error) {
	if alloc == nil {
		alloc = DefaultAllocator
	}

	// NUL is the element terminator at the boundary, so names must not
	// contain one.
	for _, name := range names {
		if strings.IndexByte(name, 0) >= 0 {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"name %q contains a NUL byte", name)
		}
	}

	// A zero-length container is valid and releasable.
	elements := make([][]byte, 0, len(names))

	for _, name := range names {
		buf, err := alloc.Alloc(len(name) + 1)
		if err != nil {
			// Roll back: free every element allocated so far.
			for _, elem := range elements {
				alloc.Free(elem)
			}
			return nil, errors.Wrapf(err, errors.ErrAllocation,
				"failed to allocate boundary copy of %q", name).
				WithDetail("marshalled", len(elements)).
				WithDetail("total", len(names))
		}
		copy(buf, name)
		buf[len(name)] = 0
		elements = append(elements, buf)
	}

	return &StringArray{alloc: alloc, elements: elements}, nil
}

// RegisteredArchiveNames marshals the current backend registry
// snapshot into a caller-owned StringArray. The registry lock is held
// only while the snapshot is taken; the boundary copies are allocated
// afterwards.
func RegisteredArchiveNames() (*StringArray, error) {
	names := archive.Names()

	arr, err := Marshal(names, DefaultAllocator)
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("boundary")
	logger.Trace().Int("count", arr.Len()).Msg("Marshalled registered archive names")
	return arr, nil
}
