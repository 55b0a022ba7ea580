package service

import (
	"fmt"
	"image"
	"math"

	"go.uber.org/zap"

	"github.com/vo-lang/image/imageops"
	"github.com/vo-lang/image/registry"
)

// ImageOps is the codec and resampling capability the service delegates all
// pixel work to. imageops.Ops is the production implementation.
type ImageOps interface {
	OpenPath(path string) (image.Image, error)
	DecodeBytes(data []byte) (image.Image, error)
	NewRGBA(width, height int) image.Image
	ResizeExact(img image.Image, width, height int) image.Image
	Thumbnail(img image.Image, width, height int) image.Image
	EncodeBytes(img image.Image, format imageops.Format) ([]byte, error)
	SavePath(img image.Image, path string) error
}

// Service executes image operations against a shared handle registry.
// It is safe for concurrent use when its collaborators are.
type Service struct {
	reg *registry.Registry
	ops ImageOps
	log *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates a Service over the given registry and image operations.
func New(reg *registry.Registry, ops ImageOps, opts ...Option) *Service {
	s := &Service{
		reg: reg,
		ops: ops,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OpenPath decodes the image file at path and registers it under a new
// handle.
//
// Parameters:
//   - path: File path to the image. Supported formats are PNG, JPEG, GIF,
//     BMP, and WebP.
//
// Returns:
//   - registry.Handle: The handle naming the decoded image, never None on
//     success.
//   - error: Non-nil if the file cannot be opened or decoded, or the
//     registry is broken.
func (s *Service) OpenPath(path string) (registry.Handle, error) {
	img, err := s.ops.OpenPath(path)
	if err != nil {
		return registry.None, err
	}
	h, err := s.reg.Insert(img)
	if err != nil {
		return registry.None, err
	}
	s.log.Debug("opened image",
		zap.String("path", path),
		zap.Uint32("id", uint32(h)))
	return h, nil
}

// OpenBytes decodes an image from an in-memory buffer and registers it under
// a new handle.
//
// Parameters:
//   - data: Encoded image bytes. The format is sniffed from the content, so
//     the same formats as OpenPath apply.
//
// Returns:
//   - registry.Handle: The handle naming the decoded image.
//   - error: Non-nil if the bytes do not decode or the registry is broken.
func (s *Service) OpenBytes(data []byte) (registry.Handle, error) {
	img, err := s.ops.DecodeBytes(data)
	if err != nil {
		return registry.None, err
	}
	h, err := s.reg.Insert(img)
	if err != nil {
		return registry.None, err
	}
	s.log.Debug("decoded image",
		zap.Int("bytes", len(data)),
		zap.Uint32("id", uint32(h)))
	return h, nil
}

// NewRGBA creates a blank transparent canvas and registers it under a new
// handle.
//
// Parameters:
//   - width: Canvas width in pixels. Zero is legal and kept exactly.
//   - height: Canvas height in pixels. Zero is legal and kept exactly.
//
// Returns:
//   - registry.Handle: The handle naming the new canvas.
//   - error: Non-nil if a dimension is out of the unsigned 32-bit range or
//     the registry is broken.
func (s *Service) NewRGBA(width, height int64) (registry.Handle, error) {
	w, err := toUint32("width", width)
	if err != nil {
		return registry.None, err
	}
	ht, err := toUint32("height", height)
	if err != nil {
		return registry.None, err
	}
	h, err := s.reg.Insert(s.ops.NewRGBA(int(w), int(ht)))
	if err != nil {
		return registry.None, err
	}
	s.log.Debug("created blank image",
		zap.Uint32("width", w),
		zap.Uint32("height", ht),
		zap.Uint32("id", uint32(h)))
	return h, nil
}

// Resize resamples the image named by id to exactly width x height and
// replaces the stored image.
//
// Parameters:
//   - id: The handle of the image to resize. It names the same entry before
//     and after.
//   - width: Target width in pixels, honored exactly even when zero.
//   - height: Target height in pixels, honored exactly even when zero.
//
// Returns:
//   - error: Non-nil if a boundary value is out of range or the lookup
//     fails.
//
// The source aspect ratio is ignored; after a successful call the stored
// image measures exactly width x height.
//
// # Errors
//
//   - Returns an out-of-range error if id, width, or height exceeds the
//     unsigned 32-bit domain or a dimension is negative
//   - Returns registry.InvalidHandleError if id names no live image
//   - Returns registry.ErrUnavailable if the registry is broken
func (s *Service) Resize(id uint64, width, height int64) error {
	h, err := toHandle(id)
	if err != nil {
		return err
	}
	w, err := toUint32("width", width)
	if err != nil {
		return err
	}
	ht, err := toUint32("height", height)
	if err != nil {
		return err
	}
	return s.reg.Update(h, func(img image.Image) (image.Image, error) {
		return s.ops.ResizeExact(img, int(w), int(ht)), nil
	})
}

// Thumbnail scales the image named by id down to fit within the
// width x height bounding box, preserving aspect ratio, and replaces the
// stored image.
//
// Parameters:
//   - id: The handle of the image to scale. It names the same entry before
//     and after.
//   - width: Bounding box width in pixels.
//   - height: Bounding box height in pixels.
//
// Returns:
//   - error: Non-nil if a boundary value is out of range or the lookup
//     fails.
//
// Images already inside the box are left at their original size; Thumbnail
// never upscales.
func (s *Service) Thumbnail(id uint64, width, height int64) error {
	h, err := toHandle(id)
	if err != nil {
		return err
	}
	w, err := toUint32("width", width)
	if err != nil {
		return err
	}
	ht, err := toUint32("height", height)
	if err != nil {
		return err
	}
	return s.reg.Update(h, func(img image.Image) (image.Image, error) {
		return s.ops.Thumbnail(img, int(w), int(ht)), nil
	})
}

// SavePath encodes the image named by id to the file at path.
//
// Parameters:
//   - path: Destination file path. The format is derived from the extension
//     with the same token policy as Encode.
//
// The stored image is read under the registry lock and left untouched.
func (s *Service) SavePath(id uint64, path string) error {
	h, err := toHandle(id)
	if err != nil {
		return err
	}
	return s.reg.View(h, func(img image.Image) error {
		return s.ops.SavePath(img, path)
	})
}

// Encode encodes the image named by id to an in-memory buffer.
//
// Parameters:
//   - id: The handle of the image to encode.
//   - token: Format token, matched case-insensitively with an optional
//     leading dot ("png", "jpg", "jpeg", "gif", "bmp", "webp"). Empty means
//     PNG.
//
// Returns:
//   - []byte: The encoded image.
//   - error: Non-nil if the token is rejected, the lookup fails, or the
//     codec fails.
//
// # Errors
//
//   - Returns an unsupported-format error naming the token if it is not in
//     the accepted set
//   - Returns a codec error for "webp", which parses but has no encoder
//     wired
//   - Returns registry.InvalidHandleError if id names no live image
//   - Returns registry.ErrUnavailable if the registry is broken
func (s *Service) Encode(id uint64, token string) ([]byte, error) {
	h, err := toHandle(id)
	if err != nil {
		return nil, err
	}
	format := imageops.PNG
	if token != "" {
		format, err = imageops.ParseFormat(token)
		if err != nil {
			return nil, err
		}
	}
	var out []byte
	err = s.reg.View(h, func(img image.Image) error {
		data, err := s.ops.EncodeBytes(img, format)
		if err != nil {
			return err
		}
		out = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Dimensions returns the width and height of the image named by id.
//
// Parameters:
//   - id: The handle of the image to measure.
//
// Returns:
//   - uint32: Width in pixels.
//   - uint32: Height in pixels.
//   - error: Non-nil if id is out of range or the lookup fails.
func (s *Service) Dimensions(id uint64) (uint32, uint32, error) {
	h, err := toHandle(id)
	if err != nil {
		return 0, 0, err
	}
	var w, ht uint32
	err = s.reg.View(h, func(img image.Image) error {
		b := img.Bounds()
		w, ht = uint32(b.Dx()), uint32(b.Dy())
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return w, ht, nil
}

// Close removes the image named by id from the registry.
//
// Parameters:
//   - id: The handle to retire. It will never be reissued.
//
// Closing a handle twice fails with an invalid-id error, the same as any
// other lookup of a retired handle.
func (s *Service) Close(id uint64) error {
	h, err := toHandle(id)
	if err != nil {
		return err
	}
	if _, err := s.reg.Remove(h); err != nil {
		return err
	}
	s.log.Debug("closed image", zap.Uint32("id", uint32(h)))
	return nil
}

// toUint32 narrows a signed 64-bit boundary value to the native unsigned
// 32-bit domain. Violations name the field and the offending value, never
// truncate.
func toUint32(name string, v int64) (uint32, error) {
	if v < 0 || v > math.MaxUint32 {
		return 0, fmt.Errorf("%s out of range: %d", name, v)
	}
	return uint32(v), nil
}

// toHandle narrows an unsigned 64-bit boundary id to a registry handle.
func toHandle(id uint64) (registry.Handle, error) {
	if id > math.MaxUint32 {
		return registry.None, fmt.Errorf("id out of range: %d", id)
	}
	return registry.Handle(id), nil
}
