// Package batch renders many captcha images concurrently.
//
// It backs the CLI sample command: [Plan] draws random texts and output
// paths, [Run] fans the jobs out to a fixed worker pool and streams results
// back in completion order.
//
//	jobs := batch.Plan(rng, batch.PlanOptions{Count: 100, Dir: "output"})
//	for r := range batch.Run(ctx, gen, jobs, batch.Options{}) {
//	    if r.Err != nil {
//	        log.Error("render failed", "text", r.Text, "err", r.Err)
//	    }
//	}
package batch

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Renderer writes one image for a text. *captcha.Generator implements it.
type Renderer interface {
	WriteFile(text, path string) error
}

// Job is one image to render.
type Job struct {
	Text string
	Path string
}

// Result reports the outcome of one job.
type Result struct {
	Job
	Err     error
	Elapsed time.Duration
}

// Options configures a batch run.
type Options struct {
	// Workers is the number of concurrent renders. Defaults to GOMAXPROCS.
	Workers int

	Logger *log.Logger
}

// WithDefaults returns a copy with zero fields replaced by defaults.
func (o Options) WithDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Run renders jobs with a worker pool. The returned channel yields one
// Result per started job and is closed when all workers are done.
//
// Cancelling ctx stops dispatching; jobs that were not started are reported
// with ctx's error.
func Run(ctx context.Context, r Renderer, jobs []Job, opts Options) <-chan Result {
	opts = opts.WithDefaults()
	p := &pool{
		ctx:     ctx,
		render:  r,
		logger:  opts.Logger,
		jobs:    make(chan Job, opts.Workers*2),
		results: make(chan Result, opts.Workers*2),
	}
	go p.run(jobs, opts.Workers)
	return p.results
}

type pool struct {
	ctx    context.Context
	render Renderer
	logger *log.Logger

	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
}

func (p *pool) run(jobs []Job, workers int) {
	for range min(workers, max(1, len(jobs))) {
		p.wg.Add(1)
		go p.worker()
	}

	p.dispatch(jobs)
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}

func (p *pool) dispatch(jobs []Job) {
	for i, j := range jobs {
		select {
		case p.jobs <- j:
		case <-p.ctx.Done():
			p.logger.Debug("batch cancelled", "remaining", len(jobs)-i)
			for _, skipped := range jobs[i:] {
				p.results <- Result{Job: skipped, Err: p.ctx.Err()}
			}
			return
		}
	}
}

func (p *pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		if err := p.ctx.Err(); err != nil {
			p.results <- Result{Job: j, Err: err}
			continue
		}
		start := time.Now()
		err := p.render.WriteFile(j.Text, j.Path)
		elapsed := time.Since(start)
		if err != nil {
			p.logger.Debug("render failed", "path", j.Path, "err", err)
		} else {
			p.logger.Debug("rendered", "path", j.Path, "elapsed", elapsed.Round(time.Microsecond))
		}
		p.results <- Result{Job: j, Err: err, Elapsed: elapsed}
	}
}

// Collect drains a result channel, returning the results in completion
// order and the number of failures.
func Collect(results <-chan Result) ([]Result, int) {
	var all []Result
	failed := 0
	for r := range results {
		if r.Err != nil {
			failed++
		}
		all = append(all, r)
	}
	return all, failed
}
