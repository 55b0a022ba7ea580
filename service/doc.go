// Package service implements the logical image operations shared by every
// protocol adapter: open from a path or a byte buffer, blank canvas creation,
// exact resize, thumbnailing, save, encode, dimension query and close.
//
// A Service is a thin orchestration layer. It narrows wide boundary integers
// to the native 32-bit domain, resolves handles through a registry.Registry,
// and delegates all pixel work to an ImageOps implementation. It holds no
// state of its own beyond those two collaborators, so adapters stay
// translation-only and the operation semantics live in exactly one place.
//
// Every failure is a flat, single-line message naming the offending handle,
// parameter or format token. Codec and I/O failures surface the underlying
// library's message verbatim.
package service
