// Package wasmcall exposes the image operations across a linear-memory
// boundary where the host can pass only raw bytes: a WASM module built for
// wasip1 with one exported entry point per operation plus a pair of manual
// memory-management primitives.
//
// # Memory Contract
//
// The exported allocate(size) reserves a buffer and hands ownership to the
// caller; deallocate(ptr, size) reclaims it. There is no reference counting:
// a buffer the caller never deallocates leaks by contract, and calling
// deallocate with a pointer the arena did not issue is ignored. The Arena
// pins every outstanding buffer so the garbage collector cannot move or
// reclaim memory the host still references.
//
// Every operation entry point has the uniform signature
//
//	op(inPtr, inLen, outLenPtr uint32) (outPtr uint32)
//
// The response buffer is allocated from the same arena, its length is
// written through outLenPtr, and the caller owns it: the host deallocates
// it when done.
//
// # Request and Response Encoding
//
// Requests and responses use the tagwire encoding: flat little-endian
// request fields and self-describing tagged response streams. The Handlers
// type implements the operation surface portably (it compiles and is tested
// on every platform); the wasip1 build wires it to the exported symbols.
//
// Two operations are unsupported in this hosting mode because no filesystem
// is reachable across the boundary: open-from-path and save-to-path fail
// immediately with a fixed diagnostic and never touch the registry.
package wasmcall
