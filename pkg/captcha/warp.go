package captcha

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/disintegration/imaging"
)

// warpGlyph pinches a mask with a random quadrilateral.
//
// Corner offsets are drawn from ±10–30% of the footprint width and ±20–30%
// of its height. The mask is stretched to make room for them and then mapped
// back into a w×h footprint through the displaced quadrilateral.
func warpGlyph(rng *rand.Rand, mask *image.Alpha, w, h int) *image.Alpha {
	dx := float64(w) * uniform(rng, 0.1, 0.3)
	dy := float64(h) * uniform(rng, 0.2, 0.3)
	x1 := int(uniform(rng, -dx, dx))
	y1 := int(uniform(rng, -dy, dy))
	x2 := int(uniform(rng, -dx, dx))
	y2 := int(uniform(rng, -dy, dy))
	w2 := w + abs(x1) + abs(x2)
	h2 := h + abs(y1) + abs(y2)

	stretched := alphaOf(imaging.Resize(mask, w2, h2, imaging.Linear))
	quad := [8]float64{
		float64(x1), float64(y1),
		float64(-x1), float64(h2 - y2),
		float64(w2 + x2), float64(h2 + y2),
		float64(w2 - x2), float64(-y1),
	}
	return cropToContent(quadTransform(stretched, w, h, quad))
}

// quadTransform resamples src into a w×h mask. Destination corners map to
// the source quadrilateral given as upper-left, lower-left, lower-right and
// upper-right points; everything in between is interpolated bilinearly.
func quadTransform(src *image.Alpha, w, h int, quad [8]float64) *image.Alpha {
	fw, fh := float64(w), float64(h)
	x0, y0 := quad[0], quad[1]
	ax := [4]float64{
		x0,
		(quad[6] - x0) / fw,
		(quad[2] - x0) / fh,
		(quad[4] - quad[2] - quad[6] + x0) / (fw * fh),
	}
	ay := [4]float64{
		y0,
		(quad[7] - y0) / fw,
		(quad[3] - y0) / fh,
		(quad[5] - quad[3] - quad[7] + y0) / (fw * fh),
	}

	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	for y := range h {
		fy := float64(y) + 0.5
		for x := range w {
			fx := float64(x) + 0.5
			sx := ax[0] + ax[1]*fx + ax[2]*fy + ax[3]*fx*fy
			sy := ay[0] + ay[1]*fx + ay[2]*fy + ay[3]*fx*fy
			dst.Pix[y*dst.Stride+x] = sampleBilinear(src, sx, sy)
		}
	}
	return dst
}

// sampleBilinear reads src at a continuous position. Pixels outside src
// count as transparent.
func sampleBilinear(src *image.Alpha, x, y float64) uint8 {
	x -= 0.5
	y -= 0.5
	fx, fy := math.Floor(x), math.Floor(y)
	ix, iy := int(fx), int(fy)
	tx, ty := x-fx, y-fy

	at := func(i, j int) float64 {
		if i < 0 || j < 0 || i >= src.Rect.Dx() || j >= src.Rect.Dy() {
			return 0
		}
		return float64(src.Pix[j*src.Stride+i])
	}
	top := at(ix, iy)*(1-tx) + at(ix+1, iy)*tx
	bottom := at(ix, iy+1)*(1-tx) + at(ix+1, iy+1)*tx
	v := top*(1-ty) + bottom*ty
	return uint8(max(0, min(255, math.Round(v))))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
