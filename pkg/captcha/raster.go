package captcha

import (
	"image"

	"golang.org/x/image/draw"
)

// toRGBA returns img as an *image.RGBA with its origin at (0,0), copying only
// when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// alphaOf extracts the alpha channel of an imaging result.
func alphaOf(img *image.NRGBA) *image.Alpha {
	b := img.Bounds()
	dst := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+4*b.Dx()]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+b.Dx()]
		for x := range row {
			row[x] = src[4*x+3]
		}
	}
	return dst
}

// cropToContent trims a mask to the bounding box of its non-zero pixels.
// A mask with no coverage is returned unchanged so it never becomes empty.
func cropToContent(m *image.Alpha) *image.Alpha {
	b := m.Bounds()
	box := image.Rectangle{}
	found := false
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := m.Pix[(y-b.Min.Y)*m.Stride : (y-b.Min.Y)*m.Stride+b.Dx()]
		for i, a := range row {
			if a == 0 {
				continue
			}
			p := image.Rect(b.Min.X+i, y, b.Min.X+i+1, y+1)
			if !found {
				box, found = p, true
			} else {
				box = box.Union(p)
			}
		}
	}
	if !found {
		return m
	}

	dst := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	draw.Draw(dst, dst.Bounds(), m, box.Min, draw.Src)
	return dst
}
