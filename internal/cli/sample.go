package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/captcha/pkg/batch"
	"github.com/matzehuels/captcha/pkg/captcha"
)

// sampleOpts holds the command-line flags for the sample command.
type sampleOpts struct {
	plan    batch.PlanOptions
	workers int  // concurrent renders
	clean   bool // remove the output directory first
	plain   bool // spinner and summary instead of the interactive progress view
}

// sampleCommand creates the sample command for rendering a batch of
// random-text images.
func (c *CLI) sampleCommand() *cobra.Command {
	opts := sampleOpts{
		plan: batch.PlanOptions{
			Count:   batch.DefaultCount,
			MinLen:  batch.DefaultMinLen,
			MaxLen:  batch.DefaultMaxLen,
			Charset: batch.DefaultCharset,
			Dir:     batch.DefaultDir,
		},
	}

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Render a batch of random-text images",
		Long: `Render --count images with random text of --min to --max characters drawn
from --charset. Each image is written to <dir>/<text>.<format>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSample(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.plan.Count, "count", "n", opts.plan.Count, "number of images")
	cmd.Flags().IntVar(&opts.plan.MinLen, "min", opts.plan.MinLen, "minimum text length")
	cmd.Flags().IntVar(&opts.plan.MaxLen, "max", opts.plan.MaxLen, "maximum text length")
	cmd.Flags().StringVar(&opts.plan.Charset, "charset", opts.plan.Charset, "characters to draw text from")
	cmd.Flags().StringVarP(&opts.plan.Dir, "dir", "d", opts.plan.Dir, "output directory")
	cmd.Flags().StringVarP(&opts.plan.Format, "format", "f", "", "output format: png (default), jpeg, gif, bmp, tiff")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "concurrent renders (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.clean, "clean", false, "remove the output directory before writing")
	cmd.Flags().BoolVar(&opts.plain, "plain", false, "plain output without the interactive progress view")

	return cmd
}

func (c *CLI) runSample(cmd *cobra.Command, opts sampleOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	out := newPrinter(cmd.OutOrStdout())

	if err := opts.plan.Validate(); err != nil {
		return err
	}
	gen, err := c.newGenerator(cmd)
	if err != nil {
		return err
	}
	if err := gen.LoadFonts(); err != nil {
		return err
	}

	if opts.clean {
		out.info("Cleaning %s", opts.plan.Dir)
		if err := os.RemoveAll(opts.plan.Dir); err != nil {
			return fmt.Errorf("clean %s: %w", opts.plan.Dir, err)
		}
	}
	if err := os.MkdirAll(opts.plan.Dir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", opts.plan.Dir, err)
	}

	cfg := gen.Config()
	jobs := batch.Plan(captchaRand(cfg), opts.plan)
	runOpts := batch.Options{Workers: opts.workers, Logger: logger}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	results := batch.Run(ctx, gen, jobs, runOpts)

	var done, failed int
	if opts.plain {
		done, failed = runSamplePlain(ctx, results, len(jobs))
	} else {
		model, err := runSampleTUI(ctx, cancel, results, len(jobs))
		if err != nil {
			return err
		}
		done, failed = model.done, model.failed
	}

	if failed > 0 {
		out.warning("%d of %d images failed", failed, len(jobs))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	out.success("Rendered %d images in %s", done-failed, time.Since(start).Round(time.Millisecond))
	out.detail("Directory: %s", opts.plan.Dir)
	return nil
}

func runSamplePlain(ctx context.Context, results <-chan batch.Result, total int) (done, failed int) {
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d images...", total))
	spinner.Start()
	defer spinner.Stop()

	for r := range results {
		done++
		if r.Err != nil {
			failed++
		}
		spinner.SetMessage(fmt.Sprintf("Rendering %d/%d images...", done, total))
	}
	return done, failed
}

func runSampleTUI(ctx context.Context, cancel context.CancelFunc, results <-chan batch.Result, total int) (sampleModel, error) {
	p := tea.NewProgram(
		newSampleModel(results, total, cancel),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
	)
	final, err := p.Run()
	// Workers block on the result channel until it is drained.
	go func() {
		for range results {
		}
	}()
	if err != nil && ctx.Err() == nil {
		return sampleModel{}, fmt.Errorf("progress view: %w", err)
	}
	m, ok := final.(sampleModel)
	if !ok {
		return sampleModel{}, nil
	}
	return m, nil
}

// captchaRand seeds the text sampler from the configured seed so seeded
// runs reproduce the same file names.
func captchaRand(cfg captcha.Config) *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
