package captcha

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
)

// smoothKernel is a mild 3×3 blur weighted toward the centre pixel.
var smoothKernel = [9]float64{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

// addDots draws count filled ellipses with radii in [1, maxRadius]. Each dot
// is c or, by coin flip, a random color; monochrome images only use c.
func addDots(rng *rand.Rand, img *image.RGBA, c color.RGBA, count, maxRadius int, monochrome bool) {
	if count <= 0 {
		return
	}
	dc := gg.NewContextForRGBA(img)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for range count {
		x := intRange(rng, 0, w)
		y := intRange(rng, 0, h)
		rx := intRange(rng, 1, maxRadius)
		ry := intRange(rng, 1, maxRadius)
		fill := c
		if !coin(rng) && !monochrome {
			fill = randomColor(rng, nil, 0)
		}
		dc.SetColor(fill)
		dc.DrawEllipse(float64(x), float64(y), float64(rx), float64(ry))
		dc.Fill()
	}
}

// addCurve strokes one elliptical arc spanning the image. The bounding box
// runs from the left half to the right half and from the top half to the
// bottom half; one edge is mirrored outward to exaggerate the bend.
func addCurve(rng *rand.Rand, img *image.RGBA, c color.RGBA) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	x1 := intRange(rng, 0, w/2)
	x2 := intRange(rng, w-w/2, w)
	y1 := intRange(rng, 0, h/2)
	y2 := intRange(rng, h-h/2, h)

	var start, end int
	if coin(rng) {
		y1 += y1 - y2
		end = intRange(rng, 90, 180)
		start = intRange(rng, 0, 90)
	} else {
		y2 += y2 - y1
		end = intRange(rng, 270, 360)
		start = intRange(rng, 180, 270)
	}

	dc := gg.NewContextForRGBA(img)
	dc.SetColor(c)
	dc.SetLineWidth(1)
	dc.DrawEllipticalArc(
		float64(x1+x2)/2, float64(y1+y2)/2,
		float64(x2-x1)/2, float64(y2-y1)/2,
		gg.Radians(float64(start)), gg.Radians(float64(end)),
	)
	dc.Stroke()
}

// smooth applies the 3×3 smoothing kernel to the whole image.
func smooth(img *image.RGBA) *image.RGBA {
	return toRGBA(imaging.Convolve3x3(img, smoothKernel, &imaging.ConvolveOptions{Normalize: true}))
}
