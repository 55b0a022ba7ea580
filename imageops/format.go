package imageops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
)

// Format is a validated image format token.
type Format string

// The accepted format tokens. JPEG covers both the "jpg" and "jpeg"
// spellings.
const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	GIF  Format = "gif"
	BMP  Format = "bmp"
	WEBP Format = "webp"
)

// UnsupportedFormatError reports a format token outside the accepted set.
type UnsupportedFormatError struct {
	Token string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Token == "" {
		return "unsupported image format"
	}
	return fmt.Sprintf("unsupported image format: %s", e.Token)
}

// errWEBPEncode is the codec-level failure for webp output. The token itself
// is valid (webp decodes fine), there is just no encoder behind it.
var errWEBPEncode = errors.New("webp encoding is not supported")

// ParseFormat validates a format token. Matching is case-insensitive and a
// leading dot is stripped, so both "PNG" and ".png" parse. Tokens outside
// the accepted set fail with UnsupportedFormatError naming the token as the
// caller spelled it.
func ParseFormat(token string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(token, ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WEBP, nil
	}
	return "", &UnsupportedFormatError{Token: token}
}

// encoding maps a Format to the library encoder identifier. WebP has no
// encoder and fails here with a codec error, not a token error.
func (f Format) encoding() (imaging.Format, error) {
	switch f {
	case PNG:
		return imaging.PNG, nil
	case JPEG:
		return imaging.JPEG, nil
	case GIF:
		return imaging.GIF, nil
	case BMP:
		return imaging.BMP, nil
	case WEBP:
		return 0, errWEBPEncode
	}
	return 0, &UnsupportedFormatError{Token: string(f)}
}
