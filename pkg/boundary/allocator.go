package boundary

// Allocator abstracts the memory domain a marshalled array lives in.
// The default allocator uses the Go heap. Alloc returns a zeroed
// buffer of exactly the requested size or an error, never a partial
// buffer.
type Allocator interface {
	Alloc(size int) ([]byte, error)
	Free(buf []byte)
}

// heapAllocator allocates from the Go heap. Free is a no-op; the
// garbage collector reclaims released buffers once the StringArray
// drops its references.
type heapAllocator struct{}

func (heapAllocator) Alloc(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func (heapAllocator) Free(buf []byte) {}

// DefaultAllocator is the Go-heap allocator used when no explicit
// allocator is supplied.
var DefaultAllocator Allocator = heapAllocator{}
