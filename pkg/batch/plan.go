package batch

import (
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/matzehuels/captcha/pkg/errors"
	"github.com/matzehuels/captcha/pkg/sink"
)

// DefaultCharset is ASCII letters and digits.
const DefaultCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Sample defaults.
const (
	DefaultCount  = 100
	DefaultMinLen = 10
	DefaultMaxLen = 20
	DefaultDir    = "output"
)

// PlanOptions describes a batch of random-text images.
type PlanOptions struct {
	Count   int
	MinLen  int
	MaxLen  int
	Charset string
	Dir     string
	Format  string
}

// Validate checks the options and fills defaults for zero values.
func (o *PlanOptions) Validate() error {
	if o.Count == 0 {
		o.Count = DefaultCount
	}
	if o.MinLen == 0 {
		o.MinLen = DefaultMinLen
	}
	if o.MaxLen == 0 {
		o.MaxLen = max(DefaultMaxLen, o.MinLen)
	}
	if o.Charset == "" {
		o.Charset = DefaultCharset
	}
	if o.Dir == "" {
		o.Dir = DefaultDir
	}
	o.Format = sink.Normalize(o.Format)

	switch {
	case o.Count < 0:
		return errors.New(errors.ErrCodeInvalidInput, "count must not be negative, got %d", o.Count)
	case o.MinLen < 0 || o.MaxLen < o.MinLen:
		return errors.New(errors.ErrCodeInvalidInput, "invalid length range [%d, %d]", o.MinLen, o.MaxLen)
	case strings.ContainsAny(o.Charset, `/\`):
		return errors.New(errors.ErrCodeInvalidInput, "charset must not contain path separators")
	}
	if err := errors.ValidateText(o.Charset); err != nil {
		return err
	}
	return sink.ValidateFormat(o.Format)
}

// Plan draws Count random texts and names each output "<text>.<format>"
// inside Dir. Options must have been validated.
func Plan(rng *rand.Rand, opts PlanOptions) []Job {
	charset := []rune(opts.Charset)
	jobs := make([]Job, opts.Count)
	for i := range jobs {
		text := RandomText(rng, charset, opts.MinLen, opts.MaxLen)
		jobs[i] = Job{
			Text: text,
			Path: filepath.Join(opts.Dir, text+"."+opts.Format),
		}
	}
	return jobs
}

// RandomText returns a string of length in [minLen, maxLen] drawn uniformly
// from charset.
func RandomText(rng *rand.Rand, charset []rune, minLen, maxLen int) string {
	n := minLen
	if maxLen > minLen {
		n += rng.IntN(maxLen - minLen + 1)
	}
	var b strings.Builder
	for range n {
		b.WriteRune(charset[rng.IntN(len(charset))])
	}
	return b.String()
}
