// Package registry implements the native-side handle table that maps opaque
// integer handles to decoded images.
//
// The host runtime on the far side of the extension boundary cannot hold
// native heap objects. Instead it holds a Handle, a small unsigned integer,
// and every operation it performs is resolved through a Registry back to the
// image the handle names. All pixel data stays on this side of the boundary
// for its entire lifetime.
//
// # Handle Semantics
//
// Handles are allocated from a lock-free atomic counter:
//   - The first handle issued is 1; handle 0 is reserved as the "no handle"
//     sentinel used by error paths.
//   - Handles strictly increase and are never reused, even after the backing
//     image is removed. A retired handle stays invalid forever.
//   - Allocation never touches the table lock, so two goroutines can obtain
//     distinct handles without contention even while a third holds the lock.
//
// # Borrow Discipline
//
// The Registry never lets a stored image escape its critical section. Readers
// pass a callback to View and mutators pass a callback to Update; both run
// while the table lock is held. Update replaces the stored entry with the
// image returned by its callback, so a slow transform serializes all other
// table access for its duration.
//
// # Poisoning
//
// If a callback panics while the lock is held, the Registry recovers the
// panic, marks itself permanently broken, and fails that call and every
// subsequent call with ErrUnavailable. There is no recovery short of process
// restart. This mirrors poisoned-lock semantics: a critical section that
// aborted abnormally may have left the protected invariant in an unknown
// state.
package registry
