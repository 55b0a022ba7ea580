package imageops

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Ops performs decode, encode and resampling work by delegating to the
// imaging library. It is stateless and safe for concurrent use.
//
// Errors from the underlying library and the filesystem are returned
// unwrapped: callers surface the codec's own message verbatim.
type Ops struct{}

// New returns the library-backed Ops implementation.
func New() Ops {
	return Ops{}
}

// OpenPath decodes the image file at path. The format is sniffed from the
// file contents, not the extension.
func (Ops) OpenPath(path string) (image.Image, error) {
	return imaging.Open(path)
}

// DecodeBytes decodes an image from an in-memory buffer.
func (Ops) DecodeBytes(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data))
}

// NewRGBA returns a blank, fully transparent canvas of the given size.
// Zero dimensions are honored exactly.
func (Ops) NewRGBA(width, height int) image.Image {
	if width == 0 || height == 0 {
		// imaging.New collapses any zero dimension to an empty 0x0 image.
		return image.NewNRGBA(image.Rect(0, 0, width, height))
	}
	return imaging.New(width, height, color.NRGBA{})
}

// ResizeExact resamples img to exactly width x height using the Lanczos
// filter, ignoring the source aspect ratio. Zero dimensions are honored
// exactly, never reinterpreted as a preserve-aspect request.
func (Ops) ResizeExact(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if width == 0 || height == 0 || b.Dx() == 0 || b.Dy() == 0 {
		// imaging.Resize treats a zero target dimension as an aspect-ratio
		// request with a 1px floor, and collapses an empty source to 0x0.
		return image.NewNRGBA(image.Rect(0, 0, width, height))
	}
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Thumbnail scales img down to fit within the width x height bounding box,
// preserving the aspect ratio. An image that already fits is returned
// unchanged; the result is never an upscale.
func (Ops) Thumbnail(img image.Image, width, height int) image.Image {
	return imaging.Fit(img, width, height, imaging.Lanczos)
}

// EncodeBytes encodes img to an in-memory buffer in the given format.
func (Ops) EncodeBytes(img image.Image, format Format) ([]byte, error) {
	enc, err := format.encoding()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, enc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePath encodes img to the file at path, deriving the format from the
// path extension with the same token policy as ParseFormat.
func (Ops) SavePath(img image.Image, path string) error {
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	enc, err := format.encoding()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imaging.Encode(f, img, enc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
