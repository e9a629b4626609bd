package captcha

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

const (
	maxPadX     = 4
	maxPadY     = 6
	maxRotation = 30.0
)

// rasterizeGlyph draws r into a tight alpha mask, rotates it by up to
// ±maxRotation degrees and applies a random quadrilateral warp.
//
// The result is never empty: a rune without coverage, such as a space,
// keeps its measured box.
func rasterizeGlyph(rng *rand.Rand, r rune, face font.Face) *image.Alpha {
	s := string(r)
	bounds, advance := font.BoundString(face, s)
	metrics := face.Metrics()

	left := min(0, bounds.Min.X)
	w := max(1, (max(advance, bounds.Max.X) - left).Ceil())
	h := max(1, (metrics.Ascent + metrics.Descent).Ceil())

	dx := intRange(rng, 0, maxPadX)
	dy := intRange(rng, 0, maxPadY)
	canvas := image.NewAlpha(image.Rect(0, 0, w+dx, h+dy))
	d := font.Drawer{
		Dst:  canvas,
		Src:  image.Opaque,
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(dx) - left, Y: fixed.I(dy) + metrics.Ascent},
	}
	d.DrawString(s)
	mask := cropToContent(canvas)

	angle := uniform(rng, -maxRotation, maxRotation)
	mask = cropToContent(alphaOf(imaging.Rotate(mask, angle, color.Transparent)))

	return warpGlyph(rng, mask, w, h)
}
