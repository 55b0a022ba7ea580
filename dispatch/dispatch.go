package dispatch

import (
	"encoding/json"
	"fmt"

	"github.com/vo-lang/image/service"
)

// Dispatcher routes named operations with JSON-encoded arguments to the
// image service.
type Dispatcher struct {
	svc *service.Service
}

// New creates a Dispatcher over the given service.
func New(svc *service.Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// emptyObject is the response body of operations with no payload.
var emptyObject = []byte("{}")

// Dispatch executes the named operation and returns its response body.
// Every operation responds with a JSON object except encode, which returns
// the raw encoded image bytes.
//
// Argument parse failures and operation failures are returned as errors
// with their original messages.
func (d *Dispatcher) Dispatch(op string, request []byte) ([]byte, error) {
	switch op {
	case "open":
		return d.handleOpen(request)
	case "open_bytes":
		return d.handleOpenBytes(request)
	case "new_rgba":
		return d.handleNewRGBA(request)
	case "resize":
		return d.handleResize(request)
	case "thumbnail":
		return d.handleThumbnail(request)
	case "save":
		return d.handleSave(request)
	case "encode":
		return d.handleEncode(request)
	case "dimensions":
		return d.handleDimensions(request)
	case "close":
		return d.handleClose(request)
	default:
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
}

type idResponse struct {
	ID uint64 `json:"id"`
}

type dimensionsResponse struct {
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

type openArgs struct {
	Path string `json:"path"`
}

func (d *Dispatcher) handleOpen(request []byte) ([]byte, error) {
	var a openArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	h, err := d.svc.OpenPath(a.Path)
	if err != nil {
		return nil, err
	}
	return json.Marshal(idResponse{ID: uint64(h)})
}

type openBytesArgs struct {
	Data []byte `json:"data"`
}

func (d *Dispatcher) handleOpenBytes(request []byte) ([]byte, error) {
	var a openBytesArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	h, err := d.svc.OpenBytes(a.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(idResponse{ID: uint64(h)})
}

type newRGBAArgs struct {
	Width  int64 `json:"width"`
	Height int64 `json:"height"`
}

func (d *Dispatcher) handleNewRGBA(request []byte) ([]byte, error) {
	var a newRGBAArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	h, err := d.svc.NewRGBA(a.Width, a.Height)
	if err != nil {
		return nil, err
	}
	return json.Marshal(idResponse{ID: uint64(h)})
}

type resizeArgs struct {
	ID     uint64 `json:"id"`
	Width  int64  `json:"width"`
	Height int64  `json:"height"`
}

func (d *Dispatcher) handleResize(request []byte) ([]byte, error) {
	var a resizeArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	if err := d.svc.Resize(a.ID, a.Width, a.Height); err != nil {
		return nil, err
	}
	return emptyObject, nil
}

func (d *Dispatcher) handleThumbnail(request []byte) ([]byte, error) {
	var a resizeArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	if err := d.svc.Thumbnail(a.ID, a.Width, a.Height); err != nil {
		return nil, err
	}
	return emptyObject, nil
}

type saveArgs struct {
	ID   uint64 `json:"id"`
	Path string `json:"path"`
}

func (d *Dispatcher) handleSave(request []byte) ([]byte, error) {
	var a saveArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	if err := d.svc.SavePath(a.ID, a.Path); err != nil {
		return nil, err
	}
	return emptyObject, nil
}

type encodeArgs struct {
	ID     uint64 `json:"id"`
	Format string `json:"format"`
}

func (d *Dispatcher) handleEncode(request []byte) ([]byte, error) {
	var a encodeArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	return d.svc.Encode(a.ID, a.Format)
}

type idArgs struct {
	ID uint64 `json:"id"`
}

func (d *Dispatcher) handleDimensions(request []byte) ([]byte, error) {
	var a idArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	w, h, err := d.svc.Dimensions(a.ID)
	if err != nil {
		return nil, err
	}
	return json.Marshal(dimensionsResponse{Width: w, Height: h})
}

func (d *Dispatcher) handleClose(request []byte) ([]byte, error) {
	var a idArgs
	if err := json.Unmarshal(request, &a); err != nil {
		return nil, err
	}
	if err := d.svc.Close(a.ID); err != nil {
		return nil, err
	}
	return emptyObject, nil
}
