package wasmcall

import (
	"sync"
	"unsafe"
)

// MaxArenaBytes caps the total outstanding allocation size. A host that
// leaks buffers hits the cap and starts receiving null pointers instead of
// growing the module's memory without bound.
const MaxArenaBytes = 100 << 20

// Arena owns every buffer that crosses the boundary. Allocated buffers are
// pinned in a map keyed by their address so the garbage collector keeps
// them alive and in place while the host holds the pointer.
type Arena struct {
	mu    sync.Mutex
	pins  map[uintptr][]byte
	total int
	limit int
}

// NewArena returns an empty arena with the default allocation cap.
func NewArena() *Arena {
	return &Arena{
		pins:  make(map[uintptr][]byte),
		limit: MaxArenaBytes,
	}
}

// Alloc reserves size bytes and returns the buffer's address. Ownership
// transfers to the caller; the buffer stays pinned until Free is called
// with the same address. Returns 0 when size is zero or the arena cap
// would be exceeded.
func (a *Arena) Alloc(size uint32) uintptr {
	if size == 0 || uint64(size) > uint64(a.limit) {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.total+int(size) > a.limit {
		return 0
	}

	buf := make([]byte, size)
	ptr := uintptr(unsafe.Pointer(&buf[0]))
	a.pins[ptr] = buf
	a.total += int(size)
	return ptr
}

// AllocBytes reserves a buffer the size of data, copies data into it, and
// returns its address. Returns 0 when data is empty or the cap would be
// exceeded.
func (a *Arena) AllocBytes(data []byte) uintptr {
	ptr := a.Alloc(uint32(len(data)))
	if ptr == 0 {
		return 0
	}

	a.mu.Lock()
	copy(a.pins[ptr], data)
	a.mu.Unlock()
	return ptr
}

// Free releases the buffer at ptr. The size argument is part of the wire
// contract but accounting uses the pinned length, so a caller passing the
// wrong size cannot corrupt the byte counter. Pointers the arena did not
// issue, including 0, are ignored, which makes double-free harmless.
func (a *Arena) Free(ptr uintptr, size uint32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	buf, ok := a.pins[ptr]
	if !ok {
		return
	}
	delete(a.pins, ptr)
	a.total -= len(buf)
}

// Count reports the number of outstanding buffers.
func (a *Arena) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pins)
}

// Total reports the number of outstanding allocated bytes.
func (a *Arena) Total() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.total
}
