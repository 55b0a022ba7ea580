// Package tagwire implements the byte-level wire format used across the
// linear-memory boundary: a lenient little-endian cursor for request
// decoding and a self-describing tagged stream for response encoding.
//
// # Request Layout
//
// Requests are flat concatenations with no framing:
//   - scalars: fixed 8-byte little-endian unsigned integers (narrowing to
//     32 bits happens at the call site, not here)
//   - byte buffers and UTF-8 strings: 4-byte little-endian length prefix
//     followed by that many bytes
//
// The Reader is deliberately lenient: reading past the end of the input
// yields a zero scalar or an empty/truncated slice instead of failing.
// Malformed requests therefore surface one layer up, where zero values fall
// out of the operation's own validation (an absent id reads as 0, which no
// registry ever issues).
//
// # Response Layout
//
// Responses are tagged streams: each value is preceded by a one-byte kind
// marker, so the host can walk an operation's output without knowing its
// arity in advance.
//
//	NIL_ERROR  0x00                                   success, no payload
//	ERROR_STR  0x01 + u16 LE length + UTF-8 bytes     failure message
//	VALUE      0x02 + u64 LE                          one scalar result
//	BYTES      0x03 + u32 LE length + raw bytes       one binary result
//	NIL_REF    0x04                                   "no buffer" placeholder
//
// Error messages longer than 65535 bytes are truncated, never rejected.
// Composite outputs concatenate tokens in a fixed per-operation order; the
// Append functions build them dst-first in the manner of strconv.AppendInt.
package tagwire
