package captcha

import (
	"slices"

	"github.com/matzehuels/captcha/pkg/errors"
	"github.com/matzehuels/captcha/pkg/fonts"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default image width in pixels.
	DefaultWidth = 160

	// DefaultHeight is the default image height in pixels.
	DefaultHeight = 60

	// DefaultMaxDots is the upper bound of the random dot count.
	DefaultMaxDots = 40

	// DefaultMaxCurves is the upper bound of the random curve count.
	DefaultMaxCurves = 10

	// DefaultMaxShadowLayers is the upper bound of the shadow layer count.
	DefaultMaxShadowLayers = 10

	// DefaultDotMaxRadius is the largest dot radius in pixels.
	DefaultDotMaxRadius = 2

	// DefaultShadowRadius scales the jitter of each shadow layer.
	DefaultShadowRadius = 4.0

	// DefaultSmoothChance is the probability of the final smoothing pass.
	DefaultSmoothChance = 0.5
)

// DefaultFontSizes are the pixel sizes used when none are configured.
var DefaultFontSizes = []int{42, 50, 56}

// =============================================================================
// Config
// =============================================================================

// Config holds the generator parameters. The struct maps directly onto the
// TOML configuration file used by the CLI.
//
// A generator copies its Config at construction; changing features later
// means building a new generator with [Generator.Reconfigure].
type Config struct {
	Width     int      `toml:"width"`
	Height    int      `toml:"height"`
	Fonts     []string `toml:"fonts"`
	FontSizes []int    `toml:"font_sizes"`

	// Feature toggles
	BackgroundNoise bool `toml:"background_noise"`
	BackText        bool `toml:"back_text"`
	Dots            bool `toml:"dots"`
	Curves          bool `toml:"curves"`
	Smooth          bool `toml:"smooth"`
	Panda           bool `toml:"panda"` // white text on black, no random colors

	// Tuning; zero values are replaced by the defaults above.
	MaxDots         int     `toml:"max_dots,omitempty"`
	MaxCurves       int     `toml:"max_curves,omitempty"`
	MaxShadowLayers int     `toml:"max_shadow_layers,omitempty"`
	DotMaxRadius    int     `toml:"dot_max_radius,omitempty"`
	ShadowRadius    float64 `toml:"shadow_radius,omitempty"`
	SmoothChance    float64 `toml:"smooth_chance,omitempty"`

	// Seed seeds the generator's master random source. Zero picks a random
	// seed.
	Seed uint64 `toml:"seed,omitempty"`
}

// DefaultConfig returns a 160×60 configuration using the builtin mono font
// at sizes 42, 50 and 56 with every noise feature enabled.
func DefaultConfig() Config {
	return Config{
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		Fonts:           []string{fonts.DefaultFont},
		FontSizes:       slices.Clone(DefaultFontSizes),
		BackgroundNoise: true,
		BackText:        true,
		Dots:            true,
		Curves:          true,
		Smooth:          true,
		MaxDots:         DefaultMaxDots,
		MaxCurves:       DefaultMaxCurves,
		MaxShadowLayers: DefaultMaxShadowLayers,
		DotMaxRadius:    DefaultDotMaxRadius,
		ShadowRadius:    DefaultShadowRadius,
		SmoothChance:    DefaultSmoothChance,
	}
}

// ValidateAndSetDefaults checks required fields and fills zero tuning values.
// It is idempotent.
func (c *Config) ValidateAndSetDefaults() error {
	if err := errors.ValidateDimensions(c.Width, c.Height); err != nil {
		return err
	}
	if err := errors.ValidateFontList(c.Fonts); err != nil {
		return err
	}
	if err := errors.ValidateFontSizes(c.FontSizes); err != nil {
		return err
	}

	for _, knob := range []struct {
		name  string
		value int
	}{
		{"max_dots", c.MaxDots},
		{"max_curves", c.MaxCurves},
		{"max_shadow_layers", c.MaxShadowLayers},
		{"dot_max_radius", c.DotMaxRadius},
	} {
		if knob.value < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %d", knob.name, knob.value)
		}
	}
	if c.ShadowRadius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "shadow_radius must not be negative, got %g", c.ShadowRadius)
	}
	if c.SmoothChance < 0 || c.SmoothChance > 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "smooth_chance must be in [0, 1], got %g", c.SmoothChance)
	}

	if c.MaxDots == 0 {
		c.MaxDots = DefaultMaxDots
	}
	if c.MaxCurves == 0 {
		c.MaxCurves = DefaultMaxCurves
	}
	if c.MaxShadowLayers == 0 {
		c.MaxShadowLayers = DefaultMaxShadowLayers
	}
	if c.DotMaxRadius == 0 {
		c.DotMaxRadius = DefaultDotMaxRadius
	}
	if c.ShadowRadius == 0 {
		c.ShadowRadius = DefaultShadowRadius
	}
	if c.SmoothChance == 0 {
		c.SmoothChance = DefaultSmoothChance
	}
	return nil
}

func (c Config) clone() Config {
	c.Fonts = slices.Clone(c.Fonts)
	c.FontSizes = slices.Clone(c.FontSizes)
	return c
}
