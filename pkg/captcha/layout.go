package captcha

import (
	"image"
	"math/rand/v2"
)

const (
	// kerningFactor bounds negative kerning as a fraction of the average
	// glyph width.
	kerningFactor = 0.35

	// marginFactor is the base left margin as a fraction of the average
	// glyph width.
	marginFactor = 0.10
)

// Placement positions one glyph mask on the working canvas.
type Placement struct {
	Mask *image.Alpha
	X, Y int
}

// Plan is a laid-out row of glyphs.
type Plan struct {
	Glyphs []Placement

	// Width is the working canvas width. It is at least the requested
	// canvas width and always covers every glyph's right edge.
	Width int
}

// layoutGlyphs places masks left to right with random negative kerning and
// vertical jitter.
func layoutGlyphs(rng *rand.Rand, masks []*image.Alpha, canvasWidth, canvasHeight int) Plan {
	if len(masks) == 0 {
		return Plan{Width: canvasWidth}
	}

	textWidth := 0
	for _, m := range masks {
		textWidth += m.Bounds().Dx()
	}
	target := max(textWidth, canvasWidth)
	average := textWidth / len(masks)
	spread := int(kerningFactor * float64(average))
	offset := int(marginFactor * float64(average))

	// A glyph never pulls the pen back past its own left edge.
	kerning := make([]int, len(masks))
	kerned := 0
	for i, m := range masks {
		kerning[i] = max(intRange(rng, -spread, 0), -m.Bounds().Dx())
		if i < len(masks)-1 {
			kerned += kerning[i]
		}
	}
	offset += intRange(rng, 0, max(0, target-textWidth-kerned-2*offset))

	plan := Plan{Glyphs: make([]Placement, 0, len(masks)), Width: target}
	x := offset
	for i, m := range masks {
		w, h := m.Bounds().Dx(), m.Bounds().Dy()
		y := (canvasHeight - h) / 2
		if h <= canvasHeight {
			y = intRange(rng, 0, canvasHeight-h)
		}
		plan.Glyphs = append(plan.Glyphs, Placement{Mask: m, X: x, Y: y})
		plan.Width = max(plan.Width, x+w)
		x += w + kerning[i]
	}
	return plan
}
