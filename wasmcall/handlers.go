package wasmcall

import (
	"github.com/vo-lang/image/service"
	"github.com/vo-lang/image/tagwire"
)

const (
	msgOpenUnsupported = "open from path is not supported in this environment"
	msgSaveUnsupported = "save to path is not supported in this environment"
)

// Handlers maps tagged-binary requests onto the image service. Each method
// consumes one request buffer and produces one response stream. The wasip1
// build wires them to the module's exported symbols; tests and alternative
// embedders drive them directly.
type Handlers struct {
	svc *service.Service
}

// NewHandlers returns handlers backed by svc.
func NewHandlers(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// Exports returns the handler for every exported symbol name.
func (h *Handlers) Exports() map[string]func([]byte) []byte {
	return map[string]func([]byte) []byte{
		"nativeOpen":      h.Open,
		"nativeOpenBytes": h.OpenBytes,
		"nativeNewRGBA":   h.NewRGBA,
		"nativeResize":    h.Resize,
		"nativeThumbnail": h.Thumbnail,
		"nativeSave":      h.Save,
		"nativeEncode":    h.Encode,
		"nativeEncodePNG": h.EncodePNG,
		"nativeSize":      h.Size,
		"nativeClose":     h.Close,
	}
}

// Open always fails: no filesystem is reachable across the boundary, so
// opening by path is unavailable in this hosting mode. The registry is not
// touched.
func (h *Handlers) Open(_ []byte) []byte {
	out := tagwire.AppendValue(nil, 0)
	return tagwire.AppendError(out, msgOpenUnsupported)
}

// OpenBytes decodes an encoded image from the request and registers it.
// Request: one byte field holding the image data.
func (h *Handlers) OpenBytes(in []byte) []byte {
	r := tagwire.NewReader(in)
	id, err := h.svc.OpenBytes(r.Bytes())
	return idResult(uint64(id), err)
}

// NewRGBA creates a blank canvas. Request: width and height scalars.
func (h *Handlers) NewRGBA(in []byte) []byte {
	r := tagwire.NewReader(in)
	width := int64(r.Uint64())
	height := int64(r.Uint64())
	id, err := h.svc.NewRGBA(width, height)
	return idResult(uint64(id), err)
}

// Resize scales an image to exact dimensions in place. Request: id, width,
// height.
func (h *Handlers) Resize(in []byte) []byte {
	r := tagwire.NewReader(in)
	id := r.Uint64()
	width := int64(r.Uint64())
	height := int64(r.Uint64())
	return voidResult(h.svc.Resize(id, width, height))
}

// Thumbnail shrinks an image to fit within bounds in place. Request: id,
// max width, max height.
func (h *Handlers) Thumbnail(in []byte) []byte {
	r := tagwire.NewReader(in)
	id := r.Uint64()
	maxW := int64(r.Uint64())
	maxH := int64(r.Uint64())
	return voidResult(h.svc.Thumbnail(id, maxW, maxH))
}

// Save always fails: no filesystem is reachable across the boundary, so
// saving to a path is unavailable in this hosting mode. The registry is
// not touched.
func (h *Handlers) Save(_ []byte) []byte {
	return tagwire.AppendError(nil, msgSaveUnsupported)
}

// Encode re-encodes an image and returns the bytes. Request: id, then an
// optional format token; an absent token selects PNG.
func (h *Handlers) Encode(in []byte) []byte {
	r := tagwire.NewReader(in)
	id := r.Uint64()
	format := r.String()
	return bytesResult(h.svc.Encode(id, format))
}

// EncodePNG re-encodes an image as PNG. Request: id.
func (h *Handlers) EncodePNG(in []byte) []byte {
	r := tagwire.NewReader(in)
	return bytesResult(h.svc.Encode(r.Uint64(), ""))
}

// Size reports an image's dimensions. Request: id. Response: two value
// fields (width, height) followed by the error token; both values are 0
// on failure.
func (h *Handlers) Size(in []byte) []byte {
	r := tagwire.NewReader(in)
	width, height, err := h.svc.Dimensions(r.Uint64())
	if err != nil {
		out := tagwire.AppendValue(nil, 0)
		out = tagwire.AppendValue(out, 0)
		return tagwire.AppendError(out, err.Error())
	}
	out := tagwire.AppendValue(nil, uint64(width))
	out = tagwire.AppendValue(out, uint64(height))
	return tagwire.AppendNilError(out)
}

// Close removes an image from the registry. Request: id.
func (h *Handlers) Close(in []byte) []byte {
	r := tagwire.NewReader(in)
	return voidResult(h.svc.Close(r.Uint64()))
}

// idResult encodes the response of an id-producing operation: VALUE then
// the error token, with VALUE(0) on failure.
func idResult(id uint64, err error) []byte {
	if err != nil {
		out := tagwire.AppendValue(nil, 0)
		return tagwire.AppendError(out, err.Error())
	}
	return tagwire.AppendNilError(tagwire.AppendValue(nil, id))
}

// voidResult encodes the response of an operation with no payload: the
// error token alone.
func voidResult(err error) []byte {
	if err != nil {
		return tagwire.AppendError(nil, err.Error())
	}
	return tagwire.AppendNilError(nil)
}

// bytesResult encodes the response of a byte-producing operation: BYTES
// then NIL_ERROR on success, NIL_REF then ERROR_STR on failure.
func bytesResult(data []byte, err error) []byte {
	if err != nil {
		out := tagwire.AppendNilRef(nil)
		return tagwire.AppendError(out, err.Error())
	}
	out := tagwire.AppendBytes(nil, data)
	return tagwire.AppendNilError(out)
}
