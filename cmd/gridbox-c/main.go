// Command gridbox-c builds the C shared library for gridbox.
//
// Build with:
//
//	go build -buildmode=c-shared -o libgridbox.so ./cmd/gridbox-c
//
// The exported functions follow C allocation rules: everything handed to
// the caller lives on the C heap and the caller owns it. See gridbox.h
// for the ownership contract.
package main

/*
#include <stdlib.h>
#include "gridbox.h"
*/
import "C"

import (
	"unsafe"

	"github.com/arthur-debert/gridbox/pkg/archive"
	"github.com/arthur-debert/gridbox/pkg/core"
)

func init() {
	core.MustInitialize()
}

// cHeapString copies s onto the C heap as a NUL-terminated string.
// Returns nil when the allocation fails so callers can roll back.
// C.CString is not used here because it aborts on allocation failure
// instead of reporting it.
func cHeapString(s string) *C.char {
	p := C.calloc(C.size_t(len(s)+1), 1)
	if p == nil {
		return nil
	}
	buf := unsafe.Slice((*byte)(p), len(s)+1)
	copy(buf, s)
	return (*C.char)(p)
}

//export gridboxArchiveGetRegisteredArchives
func gridboxArchiveGetRegisteredArchives() *C.gridboxArrayOfString_t {
	names := archive.Names()

	arr := (*C.gridboxArrayOfString_t)(C.calloc(1, C.size_t(unsafe.Sizeof(C.gridboxArrayOfString_t{}))))
	if arr == nil {
		return nil
	}

	// A zero-length array still carries a valid, freeable data pointer.
	count := len(names)
	slots := count
	if slots == 0 {
		slots = 1
	}
	data := (**C.char)(C.calloc(C.size_t(slots), C.size_t(unsafe.Sizeof((*C.char)(nil)))))
	if data == nil {
		C.free(unsafe.Pointer(arr))
		return nil
	}

	elems := unsafe.Slice(data, slots)
	for i, name := range names {
		cs := cHeapString(name)
		if cs == nil {
			for j := 0; j < i; j++ {
				C.free(unsafe.Pointer(elems[j]))
			}
			C.free(unsafe.Pointer(data))
			C.free(unsafe.Pointer(arr))
			return nil
		}
		elems[i] = cs
	}

	arr.data = data
	arr.len = C.int(count)
	return arr
}

//export gridboxArrayOfStringDestroy
func gridboxArrayOfStringDestroy(arr *C.gridboxArrayOfString_t) {
	if arr == nil {
		return
	}
	if arr.data != nil {
		elems := unsafe.Slice(arr.data, int(arr.len))
		for _, e := range elems {
			if e != nil {
				C.free(unsafe.Pointer(e))
			}
		}
		C.free(unsafe.Pointer(arr.data))
	}
	C.free(unsafe.Pointer(arr))
}

func main() {}
