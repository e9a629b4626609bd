// Package sink encodes finished captcha rasters.
//
// Encoding is delegated to github.com/disintegration/imaging, which covers
// PNG, JPEG, GIF, BMP and TIFF. Format names are case-insensitive and "jpg"
// is accepted as an alias of "jpeg".
//
//	img, _ := gen.Generate("Ab3")
//	err := sink.Encode(w, img, sink.FormatPNG)
//	err = sink.WriteFile("out.jpg", img, sink.WithJPEGQuality(80))
package sink

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/captcha/pkg/errors"
	"github.com/matzehuels/captcha/pkg/observability"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatGIF  = "gif"
	FormatBMP  = "bmp"
	FormatTIFF = "tiff"
)

// DefaultFormat is used when no format is given.
const DefaultFormat = FormatPNG

var formats = map[string]imaging.Format{
	FormatPNG:  imaging.PNG,
	FormatJPEG: imaging.JPEG,
	"jpg":      imaging.JPEG,
	FormatGIF:  imaging.GIF,
	FormatBMP:  imaging.BMP,
	FormatTIFF: imaging.TIFF,
	"tif":      imaging.TIFF,
}

// Normalize lowercases a format name, strips a leading dot and resolves
// aliases. An empty name yields [DefaultFormat].
func Normalize(format string) string {
	f := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
	switch f {
	case "":
		return DefaultFormat
	case "jpg":
		return FormatJPEG
	case "tif":
		return FormatTIFF
	}
	return f
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if _, ok := formats[Normalize(format)]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, jpeg, gif, bmp, tiff)", format)
	}
	return nil
}

// FormatFromPath infers the output format from a file extension.
func FormatFromPath(path string) (string, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "cannot infer format of %q", filepath.Base(path))
	}
	return Normalize(f.String()), nil
}

// Option configures encoding.
type Option func(*encoder)

type encoder struct {
	jpegQuality int
	pngLevel    png.CompressionLevel
}

// WithJPEGQuality sets the JPEG quality (1-100, default 95).
func WithJPEGQuality(q int) Option {
	return func(e *encoder) { e.jpegQuality = max(1, min(q, 100)) }
}

// WithPNGCompression sets the PNG compression level.
func WithPNGCompression(level png.CompressionLevel) Option {
	return func(e *encoder) { e.pngLevel = level }
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format string, opts ...Option) error {
	e := encoder{jpegQuality: 95, pngLevel: png.DefaultCompression}
	for _, opt := range opts {
		opt(&e)
	}

	name := Normalize(format)
	f, ok := formats[name]
	if !ok {
		return ValidateFormat(format)
	}

	start := time.Now()
	cw := &countingWriter{w: w}
	err := imaging.Encode(cw, img, f,
		imaging.JPEGQuality(e.jpegQuality),
		imaging.PNGCompressionLevel(e.pngLevel),
	)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeRenderFailed, err, "encode %s", name)
	}
	observability.Encode().OnEncode(name, cw.n, time.Since(start), err)
	return err
}

// EncodeBytes encodes img into a new byte slice.
func EncodeBytes(img image.Image, format string, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes img to path, inferring the format from its extension.
// Parent directories are created as needed.
func WriteFile(path string, img image.Image, opts ...Option) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeRenderFailed, err, "create %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "create %s", path)
	}
	if err := Encode(f, img, format, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "close %s", path)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
