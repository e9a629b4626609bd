package captcha

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// chunkDivisor sets the largest chunk grid to one cell per 10 pixels.
const chunkDivisor = 10

// synthesizeBackground renders a width×height noise texture.
//
// A grid of random colors (1×1 when noise is off) is upscaled to a square
// covering the image diagonal, rotated about its centre by a random angle,
// and center-cropped. Each cell avoids the avoid color when given; fill, when
// given, replaces every random cell color.
func synthesizeBackground(rng *rand.Rand, width, height int, avoid *color.RGBA, noise bool, fill *color.RGBA) *image.RGBA {
	cols, rows := 1, 1
	if noise {
		limit := max(1, max(width, height)/chunkDivisor)
		cols = intRange(rng, 1, limit)
		rows = intRange(rng, 1, limit)
	}

	grid := image.NewRGBA(image.Rect(0, 0, cols, rows))
	for y := range rows {
		for x := range cols {
			if fill != nil {
				grid.SetRGBA(x, y, *fill)
				continue
			}
			grid.SetRGBA(x, y, randomColor(rng, avoid, backgroundDistance))
		}
	}

	side := int(math.Ceil(math.Hypot(float64(width), float64(height)))) + 4
	filter := imaging.NearestNeighbor
	if coin(rng) {
		filter = imaging.Linear
	}
	square := imaging.Resize(grid, side, side, filter)

	var interp draw.Interpolator = draw.NearestNeighbor
	if coin(rng) {
		interp = draw.BiLinear
	}
	rotated := image.NewRGBA(square.Bounds())
	interp.Transform(rotated, rotation(uniform(rng, 0, 360), float64(side)/2), square, square.Bounds(), draw.Src, nil)

	return toRGBA(imaging.CropCenter(rotated, width, height))
}

// rotation returns the source-to-destination transform rotating by deg
// degrees counter-clockwise about (c, c).
func rotation(deg, c float64) f64.Aff3 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return f64.Aff3{
		cos, sin, c - cos*c - sin*c,
		-sin, cos, c + sin*c - cos*c,
	}
}
