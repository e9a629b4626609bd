package captcha

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
)

const (
	// textDistance separates the foreground from the shadow color.
	textDistance = 64

	// backgroundDistance separates background cells from the text color.
	backgroundDistance = 64

	// maxColorAttempts bounds rejection sampling in randomColor.
	maxColorAttempts = 1000
)

// randomColor returns an opaque uniformly random color. When avoid is set,
// the result is at least minDistance away from it, measured over all four
// RGBA channels.
//
// Sampling gives up after maxColorAttempts and returns the RGB corner farthest
// from avoid. That corner maximizes the distance, so the constraint still holds
// for every reachable minDistance.
func randomColor(rng *rand.Rand, avoid *color.RGBA, minDistance float64) color.RGBA {
	for range maxColorAttempts {
		c := color.RGBA{
			R: uint8(rng.IntN(256)),
			G: uint8(rng.IntN(256)),
			B: uint8(rng.IntN(256)),
			A: 255,
		}
		if avoid == nil || colorDistance(c, *avoid) >= minDistance {
			return c
		}
	}
	return farthestCorner(*avoid)
}

func colorDistance(a, b color.RGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	da := float64(a.A) - float64(b.A)
	return math.Sqrt(dr*dr + dg*dg + db*db + da*da)
}

func farthestCorner(c color.RGBA) color.RGBA {
	flip := func(v uint8) uint8 {
		if v < 128 {
			return 255
		}
		return 0
	}
	return color.RGBA{R: flip(c.R), G: flip(c.G), B: flip(c.B), A: 255}
}

// Vector is a 2D offset.
type Vector struct {
	X, Y float64
}

// Scale multiplies both components by r.
func (v Vector) Scale(r float64) Vector {
	return Vector{X: v.X * r, Y: v.Y * r}
}

// Point rounds the vector to the nearest pixel offset.
func (v Vector) Point() image.Point {
	return image.Pt(int(math.Round(v.X)), int(math.Round(v.Y)))
}

// randomVector samples uniformly inside the unit disk.
func randomVector(rng *rand.Rand) Vector {
	for {
		v := Vector{X: uniform(rng, -1, 1), Y: uniform(rng, -1, 1)}
		if v.X*v.X+v.Y*v.Y <= 1 {
			return v
		}
	}
}

// intRange returns a uniform integer in [lo, hi].
func intRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}

// uniform returns a uniform float in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

func coin(rng *rand.Rand) bool {
	return rng.Float64() < 0.5
}

// newRand creates a PCG-backed source. A zero seed picks a random one.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
