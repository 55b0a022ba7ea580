package tagwire

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func TestAppendNilError(t *testing.T) {
	got := AppendNilError(nil)
	if !bytes.Equal(got, []byte{TagNilError}) {
		t.Errorf("AppendNilError: got %v", got)
	}
}

func TestAppendError(t *testing.T) {
	got := AppendError(nil, "bad")
	want := []byte{TagErrorStr, 0x03, 0x00, 'b', 'a', 'd'}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendError: got %v, want %v", got, want)
	}
}

func TestAppendError_Truncation(t *testing.T) {
	msg := strings.Repeat("x", MaxErrorLen+100)
	got := AppendError(nil, msg)

	if got[0] != TagErrorStr {
		t.Fatalf("tag: got %#x, want %#x", got[0], TagErrorStr)
	}
	n := binary.LittleEndian.Uint16(got[1:])
	if n != MaxErrorLen {
		t.Errorf("declared length: got %d, want %d", n, MaxErrorLen)
	}
	if len(got) != 3+MaxErrorLen {
		t.Errorf("token length: got %d, want %d", len(got), 3+MaxErrorLen)
	}
}

func TestAppendValue(t *testing.T) {
	got := AppendValue(nil, 0x0102030405060708)
	want := []byte{TagValue, 0x08, 0x07, 0x06, 0x05, 0x04, 0x03, 0x02, 0x01}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendValue: got %v, want %v", got, want)
	}
}

func TestAppendBytes(t *testing.T) {
	got := AppendBytes(nil, []byte{0xAA, 0xBB})
	want := []byte{TagBytes, 0x02, 0x00, 0x00, 0x00, 0xAA, 0xBB}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendBytes: got %v, want %v", got, want)
	}
}

func TestAppendBytes_Empty(t *testing.T) {
	got := AppendBytes(nil, nil)
	want := []byte{TagBytes, 0x00, 0x00, 0x00, 0x00}
	if !bytes.Equal(got, want) {
		t.Errorf("AppendBytes(nil): got %v, want %v", got, want)
	}
}

func TestAppendNilRef(t *testing.T) {
	got := AppendNilRef(nil)
	if !bytes.Equal(got, []byte{TagNilRef}) {
		t.Errorf("AppendNilRef: got %v", got)
	}
}

func TestAppend_Composite(t *testing.T) {
	// A scalar-returning operation: VALUE(7) then NIL_ERROR.
	out := AppendValue(nil, 7)
	out = AppendNilError(out)

	want := []byte{TagValue, 7, 0, 0, 0, 0, 0, 0, 0, TagNilError}
	if !bytes.Equal(out, want) {
		t.Errorf("composite: got %v, want %v", out, want)
	}
}

func TestReader_Uint64(t *testing.T) {
	buf := binary.LittleEndian.AppendUint64(nil, 42)
	buf = binary.LittleEndian.AppendUint64(buf, 0xFFFFFFFFFFFFFFFF)

	r := NewReader(buf)
	if got := r.Uint64(); got != 42 {
		t.Errorf("first scalar: got %d, want 42", got)
	}
	if got := r.Uint64(); got != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("second scalar: got %#x", got)
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining: got %d, want 0", r.Remaining())
	}
}

func TestReader_Bytes(t *testing.T) {
	buf := binary.LittleEndian.AppendUint32(nil, 3)
	buf = append(buf, 'a', 'b', 'c')

	r := NewReader(buf)
	if got := r.Bytes(); !bytes.Equal(got, []byte("abc")) {
		t.Errorf("Bytes: got %q, want %q", got, "abc")
	}
}

func TestReader_Mixed(t *testing.T) {
	// id scalar, then a length-prefixed string, as an encode request looks.
	buf := binary.LittleEndian.AppendUint64(nil, 5)
	buf = binary.LittleEndian.AppendUint32(buf, 4)
	buf = append(buf, "jpeg"...)

	r := NewReader(buf)
	if got := r.Uint64(); got != 5 {
		t.Errorf("id: got %d, want 5", got)
	}
	if got := r.String(); got != "jpeg" {
		t.Errorf("format: got %q, want %q", got, "jpeg")
	}
}

func TestReader_Lenient(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty input", nil},
		{"short scalar", []byte{1, 2, 3}},
		{"short length prefix", []byte{5, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.buf)
			if got := r.Uint64(); got != 0 {
				t.Errorf("Uint64 on short input: got %d, want 0", got)
			}
			// Once exhausted every further read is a zero value.
			if got := r.Bytes(); len(got) != 0 {
				t.Errorf("Bytes on exhausted input: got %v, want empty", got)
			}
			if got := r.String(); got != "" {
				t.Errorf("String on exhausted input: got %q, want empty", got)
			}
			if got := r.Uint64(); got != 0 {
				t.Errorf("Uint64 on exhausted input: got %d, want 0", got)
			}
		})
	}
}

func TestReader_TruncatedPayload(t *testing.T) {
	// Declared length 10, only 3 bytes present.
	buf := binary.LittleEndian.AppendUint32(nil, 10)
	buf = append(buf, 'x', 'y', 'z')

	r := NewReader(buf)
	if got := r.Bytes(); !bytes.Equal(got, []byte("xyz")) {
		t.Errorf("truncated payload: got %q, want %q", got, "xyz")
	}
	if r.Remaining() != 0 {
		t.Errorf("Remaining: got %d, want 0", r.Remaining())
	}
}

func TestReader_HugeDeclaredLength(t *testing.T) {
	// A length prefix near uint32 max must truncate, not panic or wrap.
	buf := binary.LittleEndian.AppendUint32(nil, 0xFFFFFFFF)
	buf = append(buf, 'o', 'k')

	r := NewReader(buf)
	if got := r.Bytes(); !bytes.Equal(got, []byte("ok")) {
		t.Errorf("huge declared length: got %q, want %q", got, "ok")
	}
}

func TestReader_ZeroLengthString(t *testing.T) {
	// An explicit zero-length field reads as empty and leaves the rest.
	buf := binary.LittleEndian.AppendUint32(nil, 0)
	buf = binary.LittleEndian.AppendUint64(buf, 9)

	r := NewReader(buf)
	if got := r.String(); got != "" {
		t.Errorf("zero-length string: got %q, want empty", got)
	}
	if got := r.Uint64(); got != 9 {
		t.Errorf("trailing scalar: got %d, want 9", got)
	}
}
