// Package extcall adapts the image operations to an in-process host call
// convention built on positional argument and return slots.
//
// The host runtime presents each call as a CallContext: typed positional
// argument readers, typed positional return-slot writers, and a byte-buffer
// allocation primitive for payloads that cross the boundary by reference.
// The Adapter's job is purely translational: read the fixed argument slots,
// run the operation, write the fixed result slots.
//
// # Slot Contract
//
// Every entry point writes exactly one terminal error slot regardless of
// outcome: nil on success, the failure message on failure. Result slots that
// precede the error slot are always written too, zeroed (or nil for buffer
// references) on failure, so the host can read them unconditionally before
// inspecting the error slot. No entry point panics across the boundary;
// failures travel only through the error slot.
//
// Exports returns the symbol table the host binds, keyed by the names the
// managed side imports (nativeOpen, nativeResize, ...).
package extcall
