package tagwire

import "encoding/binary"

// Tag bytes of the response stream.
const (
	TagNilError byte = 0x00
	TagErrorStr byte = 0x01
	TagValue    byte = 0x02
	TagBytes    byte = 0x03
	TagNilRef   byte = 0x04
)

// MaxErrorLen is the longest error message an ERROR_STR token can carry.
// Longer messages are truncated.
const MaxErrorLen = 0xFFFF

// AppendNilError appends the success marker to dst.
func AppendNilError(dst []byte) []byte {
	return append(dst, TagNilError)
}

// AppendError appends a failure message token to dst, truncating the
// message at MaxErrorLen bytes.
func AppendError(dst []byte, msg string) []byte {
	if len(msg) > MaxErrorLen {
		msg = msg[:MaxErrorLen]
	}
	dst = append(dst, TagErrorStr)
	dst = binary.LittleEndian.AppendUint16(dst, uint16(len(msg)))
	return append(dst, msg...)
}

// AppendValue appends a scalar result token to dst.
func AppendValue(dst []byte, v uint64) []byte {
	dst = append(dst, TagValue)
	return binary.LittleEndian.AppendUint64(dst, v)
}

// AppendBytes appends a binary payload token to dst.
func AppendBytes(dst []byte, p []byte) []byte {
	dst = append(dst, TagBytes)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(p)))
	return append(dst, p...)
}

// AppendNilRef appends the "no buffer result" placeholder to dst. Error
// paths of byte-returning operations use it so their output shape matches
// the success shape positionally.
func AppendNilRef(dst []byte) []byte {
	return append(dst, TagNilRef)
}

// Reader is a lenient cursor over a request byte span. Reads past the end
// of the input return zero values or truncated slices; the Reader never
// fails. Returned slices alias the underlying buffer.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a cursor positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Uint64 reads a fixed 8-byte little-endian scalar. If fewer than 8 bytes
// remain it consumes them and returns 0.
func (r *Reader) Uint64() uint64 {
	if r.off+8 > len(r.buf) {
		r.off = len(r.buf)
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

// Bytes reads a 4-byte little-endian length prefix followed by that many
// bytes. A missing prefix yields an empty slice; a payload longer than the
// remaining input is truncated to what is there.
func (r *Reader) Bytes() []byte {
	if r.off+4 > len(r.buf) {
		r.off = len(r.buf)
		return nil
	}
	n := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	// Unsigned compare so a huge declared length cannot wrap on 32-bit
	// targets; it just truncates to what is there.
	if rest := len(r.buf) - r.off; uint64(n) > uint64(rest) {
		n = uint32(rest)
	}
	p := r.buf[r.off : r.off+int(n)]
	r.off += int(n)
	return p
}

// String reads a length-prefixed UTF-8 string with the same leniency as
// Bytes.
func (r *Reader) String() string {
	return string(r.Bytes())
}

// Remaining reports how many bytes are left to read.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}
