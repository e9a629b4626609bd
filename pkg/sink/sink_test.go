package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/captcha/pkg/errors"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "png"},
		{"PNG", "png"},
		{".png", "png"},
		{"jpg", "jpeg"},
		{"JPEG", "jpeg"},
		{"tif", "tiff"},
		{"webp", "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"png", false},
		{"jpeg", false},
		{"jpg", false},
		{"gif", false},
		{"bmp", false},
		{"tiff", false},
		{"", false},
		{"webp", true},
		{"svg", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			err := ValidateFormat(tt.format)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidFormat)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out.png", "png", false},
		{"dir/out.JPG", "jpeg", false},
		{"out.jpeg", "jpeg", false},
		{"out.gif", "gif", false},
		{"out.bmp", "bmp", false},
		{"out.tif", "tiff", false},
		{"out", "", true},
		{"out.webp", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestEncodeDecodes(t *testing.T) {
	img := testImage()
	for _, format := range []string{FormatPNG, FormatJPEG, FormatGIF, FormatBMP, FormatTIFF} {
		t.Run(format, func(t *testing.T) {
			data, err := EncodeBytes(img, format)
			if err != nil {
				t.Fatalf("EncodeBytes(%s) error: %v", format, err)
			}
			decoded, name, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("decode %s: %v", format, err)
			}
			if name != format {
				t.Errorf("decoded format = %q, want %q", name, format)
			}
			if decoded.Bounds().Dx() != 16 || decoded.Bounds().Dy() != 8 {
				t.Errorf("decoded size = %v, want 16x8", decoded.Bounds())
			}
		})
	}
}

func TestEncodeRejectsUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, testImage(), "webp")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Encode(webp) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if buf.Len() != 0 {
		t.Error("nothing should be written for an unknown format")
	}
}

func TestEncodePNGIsLossless(t *testing.T) {
	img := testImage()
	data, err := EncodeBytes(img, "png", WithPNGCompression(png.BestSpeed))
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			r1, g1, b1, a1 := img.At(x, y).RGBA()
			r2, g2, b2, a2 := decoded.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) differs after PNG round trip", x, y)
			}
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "captcha.jpg")

	if err := WriteFile(path, testImage(), WithJPEGQuality(80)); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, name, err := image.DecodeConfig(bytes.NewReader(data)); err != nil || name != "jpeg" {
		t.Errorf("DecodeConfig() = %q, %v; want jpeg", name, err)
	}

	if err := WriteFile(filepath.Join(dir, "captcha.xyz"), testImage()); err == nil {
		t.Error("WriteFile with unknown extension should fail")
	}
}
