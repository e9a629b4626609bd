package captcha

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// compose stamps a layout onto the background.
//
// The background is stretched to the plan's working width, shadow layers are
// stamped at jittered offsets, and the foreground is stamped last. The result
// is rescaled to width×height when the working width differs.
func compose(rng *rand.Rand, background *image.RGBA, plan Plan, fg, shadow color.RGBA, layers int, radius float64, width, height int) *image.RGBA {
	canvas := background
	if b := background.Bounds(); b.Dx() != plan.Width || b.Dy() != height {
		canvas = toRGBA(imaging.Resize(background, plan.Width, height, imaging.Linear))
	}

	for range layers {
		jitter := randomVector(rng).Scale(radius).Point()
		for _, g := range plan.Glyphs {
			stamp(canvas, g, jitter, shadow)
		}
	}
	for _, g := range plan.Glyphs {
		stamp(canvas, g, image.Point{}, fg)
	}

	if b := canvas.Bounds(); b.Dx() != width || b.Dy() != height {
		canvas = toRGBA(imaging.Resize(canvas, width, height, imaging.Linear))
	}
	return canvas
}

// stamp paints c through the glyph mask at its planned position plus shift.
func stamp(dst *image.RGBA, g Placement, shift image.Point, c color.RGBA) {
	r := g.Mask.Bounds().Add(image.Pt(g.X, g.Y).Add(shift))
	draw.DrawMask(dst, r, image.NewUniform(c), image.Point{}, g.Mask, g.Mask.Bounds().Min, draw.Over)
}
