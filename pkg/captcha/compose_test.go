package captcha

import (
	"image"
	"image/color"
	"testing"
)

func solidMask(w, h int) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, w, h))
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}

func flatRGBA(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
	gray = color.RGBA{R: 90, G: 90, B: 90, A: 255}
)

func TestComposeForegroundOnTop(t *testing.T) {
	bg := flatRGBA(100, 40, gray)
	plan := Plan{
		Glyphs: []Placement{{Mask: solidMask(20, 20), X: 10, Y: 10}},
		Width:  100,
	}
	out := compose(testRand(1), bg, plan, red, blue, 5, 4, 100, 40)

	if c := out.RGBAAt(20, 20); c != red {
		t.Errorf("glyph centre = %v, want foreground %v", c, red)
	}
	if c := out.RGBAAt(90, 5); c != gray {
		t.Errorf("far pixel = %v, want background %v", c, gray)
	}
}

func TestComposeShadowLayers(t *testing.T) {
	bg := flatRGBA(100, 40, gray)
	plan := Plan{
		Glyphs: []Placement{{Mask: solidMask(10, 10), X: 40, Y: 15}},
		Width:  100,
	}
	out := compose(testRand(2), bg, plan, red, blue, 10, 4, 100, 40)

	shadow := 0
	for y := range 40 {
		for x := range 100 {
			if out.RGBAAt(x, y) == blue {
				shadow++
			}
		}
	}
	if shadow == 0 {
		t.Error("no shadow pixels visible around the foreground")
	}
}

func TestComposeRescales(t *testing.T) {
	bg := flatRGBA(160, 60, gray)
	plan := Plan{
		Glyphs: []Placement{
			{Mask: solidMask(100, 40), X: 0, Y: 10},
			{Mask: solidMask(100, 40), X: 120, Y: 10},
		},
		Width: 220,
	}
	out := compose(testRand(3), bg, plan, red, blue, 0, 4, 160, 60)
	if b := out.Bounds(); b.Dx() != 160 || b.Dy() != 60 {
		t.Fatalf("compose() bounds = %v, want 160x60", b)
	}
	if c := out.RGBAAt(30, 30); c != red {
		t.Errorf("pixel inside first glyph = %v, want %v", c, red)
	}
}

func TestComposeNoGlyphs(t *testing.T) {
	bg := flatRGBA(50, 20, gray)
	out := compose(testRand(4), bg, Plan{Width: 50}, red, blue, 3, 4, 50, 20)
	if string(out.Pix) != string(flatRGBA(50, 20, gray).Pix) {
		t.Error("an empty plan should leave the background untouched")
	}
}

func TestStampClipsToCanvas(t *testing.T) {
	dst := flatRGBA(10, 10, gray)
	stamp(dst, Placement{Mask: solidMask(6, 6), X: 7, Y: -3}, image.Pt(0, 0), red)
	if c := dst.RGBAAt(9, 0); c != red {
		t.Errorf("pixel (9,0) = %v, want %v", c, red)
	}
	if c := dst.RGBAAt(6, 5); c != gray {
		t.Errorf("pixel (6,5) = %v, want %v", c, gray)
	}
}
