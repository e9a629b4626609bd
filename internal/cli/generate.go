package cli

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/captcha/pkg/captcha"
	"github.com/matzehuels/captcha/pkg/sink"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	output  string // output file path, "-" for stdout
	format  string // output format, inferred from output when empty
	quality int    // JPEG quality
}

// generateCommand creates the generate command for rendering one image.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{quality: 95}

	cmd := &cobra.Command{
		Use:   "generate TEXT",
		Short: "Render one captcha image",
		Long: `Render TEXT into a captcha image.

Without --output the image is written to <text>-<id>.<format> in the current
directory. Use --output - to write the encoded image to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, or - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), jpeg, gif, bmp, tiff")
	cmd.Flags().IntVar(&opts.quality, "quality", opts.quality, "JPEG quality (1-100)")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, text string, opts generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	format, err := resolveFormat(opts.output, opts.format)
	if err != nil {
		return err
	}
	gen, err := c.newGenerator(cmd)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	img, err := gen.Generate(text)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	encodeOpts := []sink.Option{sink.WithJPEGQuality(opts.quality)}
	if opts.output == "-" {
		return sink.Encode(cmd.OutOrStdout(), img, format, encodeOpts...)
	}

	path := opts.output
	if path == "" {
		path = defaultOutputName(text, format)
	}
	if err := sink.WriteFile(path, img, encodeOpts...); err != nil {
		return err
	}

	cfg := gen.Config()
	prog.done(fmt.Sprintf("Rendered %q", text))
	out := newPrinter(cmd.OutOrStdout())
	out.success("Generated captcha")
	out.keyValue("size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height))
	out.keyValue("format", format)
	out.tags("features", featureTags(cfg))
	out.file(path)
	return nil
}

// featureTags lists the configured rendering stages.
func featureTags(cfg captcha.Config) []tag {
	return []tag{
		{"noise", cfg.BackgroundNoise},
		{"back-text", cfg.BackText},
		{"dots", cfg.Dots},
		{"curves", cfg.Curves},
		{"smooth", cfg.Smooth},
		{"panda", cfg.Panda},
	}
}

// resolveFormat picks the output format from the flag, the output path or
// the default, in that order. An explicit format must agree with the path.
func resolveFormat(output, format string) (string, error) {
	if format != "" {
		if err := sink.ValidateFormat(format); err != nil {
			return "", err
		}
		format = sink.Normalize(format)
	}
	if output == "" || output == "-" {
		if format == "" {
			return sink.DefaultFormat, nil
		}
		return format, nil
	}

	fromPath, err := sink.FormatFromPath(output)
	if err != nil {
		return "", err
	}
	if format != "" && format != fromPath {
		return "", fmt.Errorf("format %q does not match output %s", format, output)
	}
	return fromPath, nil
}

// defaultOutputName returns "<text>-<id>.<format>" with the text reduced to
// filename-safe characters.
func defaultOutputName(text, format string) string {
	safe := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return r
		}
		return '_'
	}, text)
	if strings.Trim(safe, "_") == "" {
		safe = appName
	}
	return fmt.Sprintf("%s-%s.%s", safe, uuid.NewString()[:8], format)
}
