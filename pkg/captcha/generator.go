package captcha

import (
	"image"
	"image/color"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/matzehuels/captcha/pkg/errors"
	"github.com/matzehuels/captcha/pkg/fonts"
	"github.com/matzehuels/captcha/pkg/observability"
	"github.com/matzehuels/captcha/pkg/sink"
)

var (
	pandaForeground = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	pandaBackground = color.RGBA{A: 255}
)

// Generator renders captcha images for one configuration.
type Generator struct {
	cfg    Config
	table  *fonts.Table
	logger *log.Logger

	mu  sync.Mutex
	src *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithRand seeds the master random source explicitly, overriding
// [Config.Seed].
func WithRand(seed1, seed2 uint64) Option {
	return func(g *Generator) { g.src = rand.New(rand.NewPCG(seed1, seed2)) }
}

// New validates cfg and creates a generator. Fonts are loaded lazily on the
// first render; call [Generator.LoadFonts] to load them eagerly.
func New(cfg Config, opts ...Option) (*Generator, error) {
	cfg = cfg.clone()
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if g.src == nil {
		g.src = newRand(cfg.Seed)
	}
	g.table = fonts.NewTable(cfg.Fonts, cfg.FontSizes, g.logger)
	return g, nil
}

// Config returns a copy of the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg.clone()
}

// LoadFonts loads the font table now instead of on first render.
func (g *Generator) LoadFonts() error {
	_, err := g.table.Entries()
	return err
}

// WithSize returns a generator for another output size. It shares the font
// table, so fonts are loaded at most once across both.
func (g *Generator) WithSize(width, height int) (*Generator, error) {
	if err := errors.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	cfg := g.cfg.clone()
	cfg.Width, cfg.Height = width, height
	return &Generator{
		cfg:    cfg,
		table:  g.table,
		logger: g.logger,
		src:    g.fork(),
	}, nil
}

// Reconfigure returns a new generator for cfg, keeping the logger. The font
// table is rebuilt.
func (g *Generator) Reconfigure(cfg Config) (*Generator, error) {
	return New(cfg, WithLogger(g.logger))
}

// fork derives an independent source from the master source.
func (g *Generator) fork() *rand.Rand {
	g.mu.Lock()
	s1, s2 := g.src.Uint64(), g.src.Uint64()
	g.mu.Unlock()
	return rand.New(rand.NewPCG(s1, s2))
}

// Generate renders text using a source derived from the master source.
func (g *Generator) Generate(text string) (*image.RGBA, error) {
	return g.Render(text, g.fork())
}

// Write renders text and encodes it to w in the given format.
func (g *Generator) Write(text string, w io.Writer, format string) error {
	if err := sink.ValidateFormat(format); err != nil {
		return err
	}
	img, err := g.Generate(text)
	if err != nil {
		return err
	}
	return sink.Encode(w, img, format)
}

// WriteFile renders text to path; the format follows the file extension.
func (g *Generator) WriteFile(text, path string) error {
	if _, err := sink.FormatFromPath(path); err != nil {
		return err
	}
	img, err := g.Generate(text)
	if err != nil {
		return err
	}
	return sink.WriteFile(path, img)
}

// Render renders text drawing all randomness from rng. The same text and an
// identically seeded rng produce identical pixels.
func (g *Generator) Render(text string, rng *rand.Rand) (*image.RGBA, error) {
	if err := errors.ValidateText(text); err != nil {
		return nil, err
	}
	runes := []rune(text)

	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(g.cfg.Width, g.cfg.Height, len(runes))
	img, err := g.render(runes, rng)
	hooks.OnRenderComplete(len(runes), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// features holds the random decisions made once per render.
type features struct {
	fg, back color.RGBA
	layers   int
	dots     int
	curves   int
}

func (g *Generator) pick(rng *rand.Rand) features {
	cfg := &g.cfg
	var f features
	if cfg.Panda {
		f.fg, f.back = pandaForeground, pandaBackground
	} else {
		f.fg = randomColor(rng, nil, 0)
		f.back = randomColor(rng, &f.fg, textDistance)
	}
	if cfg.BackText && coin(rng) {
		f.layers = intRange(rng, 1, cfg.MaxShadowLayers)
	}
	if cfg.Dots {
		f.dots = intRange(rng, 0, cfg.MaxDots)
	}
	if cfg.Curves {
		f.curves = intRange(rng, 0, cfg.MaxCurves)
	}
	return f
}

func (g *Generator) render(runes []rune, rng *rand.Rand) (*image.RGBA, error) {
	entries, err := g.table.Entries()
	if err != nil {
		return nil, err
	}

	cfg := &g.cfg
	f := g.pick(rng)

	// Bare foreground text must stand out from the background; with a
	// shadow layer underneath it already does.
	var avoid, fill *color.RGBA
	if f.layers == 0 {
		avoid = &f.fg
	}
	if cfg.Panda {
		fill = &f.back
	}
	canvas := synthesizeBackground(rng, cfg.Width, cfg.Height, avoid, cfg.BackgroundNoise, fill)

	if len(runes) > 0 {
		masks, err := rasterizeText(rng, runes, entries)
		if err != nil {
			return nil, err
		}
		plan := layoutGlyphs(rng, masks, cfg.Width, cfg.Height)
		canvas = compose(rng, canvas, plan, f.fg, f.back, f.layers, cfg.ShadowRadius, cfg.Width, cfg.Height)
	}

	addDots(rng, canvas, f.fg, f.dots, cfg.DotMaxRadius, cfg.Panda)
	for range f.curves {
		c := f.fg
		if !coin(rng) && !cfg.Panda {
			c = randomColor(rng, nil, 0)
		}
		addCurve(rng, canvas, c)
	}

	smoothed := cfg.Smooth && rng.Float64() < cfg.SmoothChance
	if smoothed {
		canvas = smooth(canvas)
	}

	g.logger.Debug("captcha rendered",
		"glyphs", len(runes),
		"fg", hexColor(f.fg),
		"back", hexColor(f.back),
		"layers", f.layers,
		"dots", f.dots,
		"curves", f.curves,
		"smoothed", smoothed,
	)
	return canvas, nil
}

// rasterizeText draws one mask per rune, each with a face picked uniformly
// from the font table. Faces are created per render and closed on return.
func rasterizeText(rng *rand.Rand, runes []rune, entries []fonts.Entry) ([]*image.Alpha, error) {
	faces := make(map[int]font.Face)
	defer func() {
		for _, face := range faces {
			face.Close()
		}
	}()

	masks := make([]*image.Alpha, len(runes))
	for i, r := range runes {
		idx := rng.IntN(len(entries))
		face, ok := faces[idx]
		if !ok {
			var err error
			if face, err = entries[idx].NewFace(); err != nil {
				return nil, err
			}
			faces[idx] = face
		}
		masks[i] = rasterizeGlyph(rng, r, face)
	}
	return masks, nil
}

func hexColor(c color.RGBA) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
