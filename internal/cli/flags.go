package cli

import (
	"github.com/spf13/pflag"

	"github.com/matzehuels/captcha/pkg/captcha"
)

// generatorFlags holds the persistent flags that override the configuration.
// Only flags the user actually set are applied.
type generatorFlags struct {
	width      int
	height     int
	fonts      []string
	sizes      []int
	seed       uint64
	noNoise    bool
	noBackText bool
	noDots     bool
	noCurves   bool
	noSmooth   bool
	panda      bool
}

func (g *generatorFlags) register(fs *pflag.FlagSet) {
	fs.IntVar(&g.width, "width", captcha.DefaultWidth, "image width in pixels")
	fs.IntVar(&g.height, "height", captcha.DefaultHeight, "image height in pixels")
	fs.StringSliceVar(&g.fonts, "font", nil, "font: builtin:<name>, a .ttf/.otf path or a system font name (repeatable)")
	fs.IntSliceVar(&g.sizes, "size", nil, "font size in pixels (repeatable)")
	fs.Uint64Var(&g.seed, "seed", 0, "random seed (0 = random)")
	fs.BoolVar(&g.noNoise, "no-noise", false, "flat background instead of noise")
	fs.BoolVar(&g.noBackText, "no-back-text", false, "disable the shadow text layer")
	fs.BoolVar(&g.noDots, "no-dots", false, "disable dot noise")
	fs.BoolVar(&g.noCurves, "no-curves", false, "disable curve noise")
	fs.BoolVar(&g.noSmooth, "no-smooth", false, "never apply the smoothing filter")
	fs.BoolVar(&g.panda, "panda", false, "monochrome white-on-black mode")
}

func (g *generatorFlags) apply(fs *pflag.FlagSet, cfg *captcha.Config) {
	if fs.Changed("width") {
		cfg.Width = g.width
	}
	if fs.Changed("height") {
		cfg.Height = g.height
	}
	if fs.Changed("font") {
		cfg.Fonts = g.fonts
	}
	if fs.Changed("size") {
		cfg.FontSizes = g.sizes
	}
	if fs.Changed("seed") {
		cfg.Seed = g.seed
	}
	if fs.Changed("no-noise") {
		cfg.BackgroundNoise = !g.noNoise
	}
	if fs.Changed("no-back-text") {
		cfg.BackText = !g.noBackText
	}
	if fs.Changed("no-dots") {
		cfg.Dots = !g.noDots
	}
	if fs.Changed("no-curves") {
		cfg.Curves = !g.noCurves
	}
	if fs.Changed("no-smooth") {
		cfg.Smooth = !g.noSmooth
	}
	if fs.Changed("panda") {
		cfg.Panda = g.panda
	}
}
