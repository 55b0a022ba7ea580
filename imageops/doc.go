// Package imageops wraps the image codec and resampling library behind the
// small surface the operation service consumes: decode from a file or a byte
// buffer, encode to a named format, exact Lanczos resize, fit-within
// thumbnailing, blank canvas creation, and save to a file.
//
// All pixel work is delegated to github.com/disintegration/imaging; this
// package adds only format-token policy and never reimplements codecs or
// resampling.
//
// # Format Tokens
//
// ParseFormat accepts the tokens png, jpg, jpeg, gif, bmp and webp,
// case-insensitively and with an optional leading dot (so file extensions can
// be passed unmodified). Every other token is rejected with an
// UnsupportedFormatError, including formats the underlying library could
// handle (for example tiff): the token set is the contract, not the
// library's capability.
//
// WebP is decode-only: the decoder is registered via golang.org/x/image/webp,
// but no pure-Go encoder is wired, so encoding to webp fails with a codec
// error rather than an unknown-token error.
package imageops
