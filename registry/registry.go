package registry

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
)

// Handle identifies an image held by a Registry. Handles are process-unique,
// strictly increasing, and never reused. The zero value is None.
type Handle uint32

// None is the reserved "no handle" sentinel written to result slots on error
// paths. A Registry never issues it.
const None Handle = 0

// ErrUnavailable is returned by every Registry method once the registry has
// been marked broken by a panic inside a critical section. The condition is
// permanent for the life of the process.
var ErrUnavailable = errors.New("image lock poisoned")

// InvalidHandleError reports a lookup of a handle that is not present in the
// registry, either because it was never issued or because it has been closed.
type InvalidHandleError struct {
	Handle Handle
}

func (e *InvalidHandleError) Error() string {
	return fmt.Sprintf("invalid image id %d", e.Handle)
}

// Registry is a concurrency-safe table of live images keyed by Handle.
//
// A single Registry is constructed at process start and injected into every
// protocol adapter; tests construct isolated instances. The zero value is not
// usable, use New.
type Registry struct {
	nextID atomic.Uint32
	broken atomic.Bool

	mu     sync.Mutex
	images map[Handle]image.Image
}

// New creates an empty Registry ready for concurrent use.
func New() *Registry {
	return &Registry{
		images: make(map[Handle]image.Image),
	}
}

// AllocateID returns the next handle in the sequence. It is lock-free, never
// fails, and never returns None. The first call returns 1.
//
// Callers normally want Insert, which pairs allocation with table insertion;
// AllocateID exists so that id generation never blocks on the table lock.
func (r *Registry) AllocateID() Handle {
	return Handle(r.nextID.Add(1))
}

// Insert stores img under a freshly allocated handle.
//
// Parameters:
//   - img: The image to store. The registry owns it until Remove.
//
// Returns:
//   - Handle: The newly issued handle, never None.
//   - error: Non-nil only if the registry is broken (ErrUnavailable).
func (r *Registry) Insert(img image.Image) (Handle, error) {
	id := r.AllocateID()
	err := r.withLock(func(images map[Handle]image.Image) error {
		images[id] = img
		return nil
	})
	if err != nil {
		return None, err
	}
	return id, nil
}

// View runs fn against the image named by h while the table lock is held.
//
// Parameters:
//   - h: The handle to look up.
//   - fn: Read-only callback. It must not retain or mutate the image; the
//     registry owns it.
//
// Returns:
//   - error: Non-nil if the lookup fails or fn reports an error.
//
// # Errors
//
//   - Returns InvalidHandleError if h is not present
//   - Returns ErrUnavailable if the registry is broken
//   - Returns fn's error unchanged otherwise
func (r *Registry) View(h Handle, fn func(image.Image) error) error {
	return r.withLock(func(images map[Handle]image.Image) error {
		img, ok := images[h]
		if !ok {
			return &InvalidHandleError{Handle: h}
		}
		return fn(img)
	})
}

// Update runs fn against the image named by h while the table lock is held
// and replaces the stored entry with fn's result.
//
// Parameters:
//   - h: The handle to look up. It names the same entry before and after.
//   - fn: Transformation callback. Its result becomes the stored image.
//
// Returns:
//   - error: Non-nil if the lookup fails or fn reports an error.
//
// If fn returns an error the entry is left exactly as it was.
//
// # Errors
//
//   - Returns InvalidHandleError if h is not present
//   - Returns ErrUnavailable if the registry is broken
//   - Returns fn's error unchanged otherwise
func (r *Registry) Update(h Handle, fn func(image.Image) (image.Image, error)) error {
	return r.withLock(func(images map[Handle]image.Image) error {
		img, ok := images[h]
		if !ok {
			return &InvalidHandleError{Handle: h}
		}
		next, err := fn(img)
		if err != nil {
			return err
		}
		images[h] = next
		return nil
	})
}

// Remove deletes the entry named by h and returns the image, transferring
// ownership to the caller.
//
// Parameters:
//   - h: The handle to retire. It will never be reissued.
//
// Returns:
//   - image.Image: The removed image, now owned by the caller.
//   - error: Non-nil if the lookup fails.
//
// # Errors
//
//   - Returns InvalidHandleError if h is not present
//   - Returns ErrUnavailable if the registry is broken
func (r *Registry) Remove(h Handle) (image.Image, error) {
	var img image.Image
	err := r.withLock(func(images map[Handle]image.Image) error {
		got, ok := images[h]
		if !ok {
			return &InvalidHandleError{Handle: h}
		}
		img = got
		delete(images, h)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Len reports the number of live entries. A broken registry reports 0.
func (r *Registry) Len() int {
	var n int
	_ = r.withLock(func(images map[Handle]image.Image) error {
		n = len(images)
		return nil
	})
	return n
}

// Broken reports whether the registry has been poisoned by a panic inside a
// critical section. Once true it never becomes false again.
func (r *Registry) Broken() bool {
	return r.broken.Load()
}

// withLock runs fn with the table lock held. A panic inside fn marks the
// registry broken and surfaces as ErrUnavailable rather than propagating, so
// a failure never aborts the host call that triggered it.
func (r *Registry) withLock(fn func(map[Handle]image.Image) error) (err error) {
	if r.broken.Load() {
		return ErrUnavailable
	}
	r.mu.Lock()
	defer func() {
		if rec := recover(); rec != nil {
			r.broken.Store(true)
			err = ErrUnavailable
		}
		r.mu.Unlock()
	}()
	if r.broken.Load() {
		// Poisoned while we were waiting on the lock.
		return ErrUnavailable
	}
	return fn(r.images)
}
