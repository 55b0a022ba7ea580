package wasmcall

import (
	"bytes"
	"testing"
)

func TestArena_AllocFree(t *testing.T) {
	a := NewArena()

	ptr := a.Alloc(64)
	if ptr == 0 {
		t.Fatal("Alloc(64) returned a null pointer")
	}
	if got := a.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	if got := a.Total(); got != 64 {
		t.Errorf("Total() = %d, want 64", got)
	}

	a.Free(ptr, 64)
	if got := a.Count(); got != 0 {
		t.Errorf("Count() after Free = %d, want 0", got)
	}
	if got := a.Total(); got != 0 {
		t.Errorf("Total() after Free = %d, want 0", got)
	}
}

func TestArena_AllocZero(t *testing.T) {
	a := NewArena()
	if ptr := a.Alloc(0); ptr != 0 {
		t.Errorf("Alloc(0) = %#x, want 0", ptr)
	}
}

func TestArena_AllocBytes(t *testing.T) {
	a := NewArena()

	data := []byte("tagged response")
	ptr := a.AllocBytes(data)
	if ptr == 0 {
		t.Fatal("AllocBytes returned a null pointer")
	}
	if got := a.pins[ptr]; !bytes.Equal(got, data) {
		t.Errorf("pinned buffer = %q, want %q", got, data)
	}
	if got := a.Total(); got != len(data) {
		t.Errorf("Total() = %d, want %d", got, len(data))
	}
}

func TestArena_AllocBytesEmpty(t *testing.T) {
	a := NewArena()
	if ptr := a.AllocBytes(nil); ptr != 0 {
		t.Errorf("AllocBytes(nil) = %#x, want 0", ptr)
	}
}

func TestArena_DoubleFree(t *testing.T) {
	a := NewArena()

	ptr := a.Alloc(32)
	a.Free(ptr, 32)
	a.Free(ptr, 32)
	if got := a.Total(); got != 0 {
		t.Errorf("Total() after double free = %d, want 0", got)
	}
	if got := a.Count(); got != 0 {
		t.Errorf("Count() after double free = %d, want 0", got)
	}
}

func TestArena_FreeWrongSize(t *testing.T) {
	// Accounting follows the pinned length, not the size the caller claims.
	a := NewArena()

	ptr := a.Alloc(100)
	a.Free(ptr, 1)
	if got := a.Total(); got != 0 {
		t.Errorf("Total() = %d, want 0", got)
	}
}

func TestArena_FreeUnknownPointer(t *testing.T) {
	a := NewArena()

	a.Free(0, 0)
	a.Free(0xdeadbeef, 16)
	if got := a.Count(); got != 0 {
		t.Errorf("Count() = %d, want 0", got)
	}
}

func TestArena_Cap(t *testing.T) {
	a := NewArena()
	a.limit = 128

	first := a.Alloc(100)
	if first == 0 {
		t.Fatal("Alloc(100) returned a null pointer")
	}
	if ptr := a.Alloc(100); ptr != 0 {
		t.Errorf("Alloc past the cap = %#x, want 0", ptr)
	}
	if ptr := a.Alloc(4_000_000_000); ptr != 0 {
		t.Errorf("oversized Alloc = %#x, want 0", ptr)
	}

	a.Free(first, 100)
	if ptr := a.Alloc(100); ptr == 0 {
		t.Error("Alloc after Free returned a null pointer, want success")
	}
}
