package extcall

import (
	"github.com/vo-lang/image/service"
)

// Ref is an opaque reference to a host-allocated byte buffer. The zero Ref
// means "no buffer".
type Ref uint64

// CallContext is the call-frame surface the host runtime hands to a native
// entry point: positional typed argument readers, positional typed
// return-slot writers, and buffer allocation for byte payloads.
type CallContext interface {
	ArgString(i int) string
	ArgInt64(i int) int64
	ArgUint64(i int) uint64
	ArgBytes(i int) []byte

	ReturnUint64(i int, v uint64)
	ReturnInt64(i int, v int64)
	ReturnRef(i int, r Ref)
	ReturnNil(i int)
	ReturnError(i int, msg string)

	// AllocBytes copies data into a host-visible buffer and returns a
	// reference the managed side can consume.
	AllocBytes(data []byte) Ref
}

// Func is a native entry point bound into the host's symbol table.
type Func func(CallContext)

// Adapter translates host call frames into operations on a shared service.
type Adapter struct {
	svc *service.Service
}

// New creates an Adapter over svc.
func New(svc *service.Service) *Adapter {
	return &Adapter{svc: svc}
}

// Exports returns the symbol table the host binds for this extension.
func (a *Adapter) Exports() map[string]Func {
	return map[string]Func{
		"nativeOpen":      a.Open,
		"nativeOpenBytes": a.OpenBytes,
		"nativeNewRGBA":   a.NewRGBA,
		"nativeResize":    a.Resize,
		"nativeThumbnail": a.Thumbnail,
		"nativeSave":      a.Save,
		"nativeEncode":    a.Encode,
		"nativeEncodePNG": a.EncodePNG,
		"nativeSize":      a.Size,
		"nativeClose":     a.Close,
	}
}

// Open decodes the file named by the path in arg 0.
// Returns: slot 0 the new handle, slot 1 the error.
func (a *Adapter) Open(call CallContext) {
	h, err := a.svc.OpenPath(call.ArgString(0))
	if err != nil {
		call.ReturnUint64(0, 0)
		call.ReturnError(1, err.Error())
		return
	}
	call.ReturnUint64(0, uint64(h))
	call.ReturnNil(1)
}

// OpenBytes decodes the image buffer in arg 0.
// Returns: slot 0 the new handle, slot 1 the error.
func (a *Adapter) OpenBytes(call CallContext) {
	h, err := a.svc.OpenBytes(call.ArgBytes(0))
	if err != nil {
		call.ReturnUint64(0, 0)
		call.ReturnError(1, err.Error())
		return
	}
	call.ReturnUint64(0, uint64(h))
	call.ReturnNil(1)
}

// NewRGBA creates a blank canvas from width (arg 0) and height (arg 1).
// Returns: slot 0 the new handle, slot 1 the error.
func (a *Adapter) NewRGBA(call CallContext) {
	h, err := a.svc.NewRGBA(call.ArgInt64(0), call.ArgInt64(1))
	if err != nil {
		call.ReturnUint64(0, 0)
		call.ReturnError(1, err.Error())
		return
	}
	call.ReturnUint64(0, uint64(h))
	call.ReturnNil(1)
}

// Resize resamples the handle in arg 0 to exactly width (arg 1) by height
// (arg 2). Returns: slot 0 the error.
func (a *Adapter) Resize(call CallContext) {
	err := a.svc.Resize(call.ArgUint64(0), call.ArgInt64(1), call.ArgInt64(2))
	if err != nil {
		call.ReturnError(0, err.Error())
		return
	}
	call.ReturnNil(0)
}

// Thumbnail scales the handle in arg 0 down to fit width (arg 1) by height
// (arg 2). Returns: slot 0 the error.
func (a *Adapter) Thumbnail(call CallContext) {
	err := a.svc.Thumbnail(call.ArgUint64(0), call.ArgInt64(1), call.ArgInt64(2))
	if err != nil {
		call.ReturnError(0, err.Error())
		return
	}
	call.ReturnNil(0)
}

// Save encodes the handle in arg 0 to the path in arg 1, format derived from
// the extension. Returns: slot 0 the error.
func (a *Adapter) Save(call CallContext) {
	err := a.svc.SavePath(call.ArgUint64(0), call.ArgString(1))
	if err != nil {
		call.ReturnError(0, err.Error())
		return
	}
	call.ReturnNil(0)
}

// Encode encodes the handle in arg 0 in the format named by arg 1 (empty
// means PNG). Returns: slot 0 a buffer reference, slot 1 the error.
func (a *Adapter) Encode(call CallContext) {
	a.encodeTo(call, call.ArgUint64(0), call.ArgString(1))
}

// EncodePNG encodes the handle in arg 0 as PNG.
// Returns: slot 0 a buffer reference, slot 1 the error.
func (a *Adapter) EncodePNG(call CallContext) {
	a.encodeTo(call, call.ArgUint64(0), "")
}

func (a *Adapter) encodeTo(call CallContext, id uint64, token string) {
	data, err := a.svc.Encode(id, token)
	if err != nil {
		call.ReturnNil(0)
		call.ReturnError(1, err.Error())
		return
	}
	call.ReturnRef(0, call.AllocBytes(data))
	call.ReturnNil(1)
}

// Size reports the dimensions of the handle in arg 0.
// Returns: slot 0 the width, slot 1 the height, slot 2 the error.
func (a *Adapter) Size(call CallContext) {
	w, h, err := a.svc.Dimensions(call.ArgUint64(0))
	if err != nil {
		call.ReturnInt64(0, 0)
		call.ReturnInt64(1, 0)
		call.ReturnError(2, err.Error())
		return
	}
	call.ReturnInt64(0, int64(w))
	call.ReturnInt64(1, int64(h))
	call.ReturnNil(2)
}

// Close retires the handle in arg 0 and releases its image.
// Returns: slot 0 the error.
func (a *Adapter) Close(call CallContext) {
	if err := a.svc.Close(call.ArgUint64(0)); err != nil {
		call.ReturnError(0, err.Error())
		return
	}
	call.ReturnNil(0)
}
