package fonts

import (
	"io"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/captcha/pkg/errors"
	"github.com/matzehuels/captcha/pkg/observability"
)

// Table is the fonts × sizes combination list used to pick a face per glyph.
//
// It is materialized once, on the first call to [Table.Entries], and is
// read-only afterwards. A load error is memoized as well: a table that failed
// to load keeps failing and is never retried.
type Table struct {
	fonts  []string
	sizes  []int
	logger *log.Logger

	once    sync.Once
	entries []Entry
	err     error
}

// NewTable creates an unloaded table. Entries are ordered fonts-major:
// every size of the first font, then every size of the second font, etc.
func NewTable(fonts []string, sizes []int, logger *log.Logger) *Table {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Table{
		fonts:  slices.Clone(fonts),
		sizes:  slices.Clone(sizes),
		logger: logger,
	}
}

// Entries returns the loaded table, loading it on first use.
// It is safe for concurrent use; concurrent first callers wait for a single
// load.
func (t *Table) Entries() ([]Entry, error) {
	t.once.Do(t.load)
	return t.entries, t.err
}

// Loaded reports whether the table has been materialized successfully.
func (t *Table) Loaded() bool {
	entries, err := t.Entries()
	return err == nil && len(entries) > 0
}

func (t *Table) load() {
	start := time.Now()
	defer func() {
		observability.Fonts().OnFontsLoaded(len(t.entries), time.Since(start), t.err)
	}()

	if err := errors.ValidateFontList(t.fonts); err != nil {
		t.err = err
		return
	}
	if err := errors.ValidateFontSizes(t.sizes); err != nil {
		t.err = err
		return
	}

	parsed := make(map[string]*opentype.Font, len(t.fonts))
	entries := make([]Entry, 0, len(t.fonts)*len(t.sizes))
	for _, id := range t.fonts {
		f, ok := parsed[id]
		if !ok {
			var err error
			if f, err = Parse(id); err != nil {
				t.err = err
				return
			}
			parsed[id] = f
			t.logger.Debug("font loaded", "id", id, "family", Family(f), "glyphs", f.NumGlyphs())
		}
		for _, size := range t.sizes {
			entries = append(entries, Entry{ID: id, Size: size, Font: f})
		}
	}
	t.entries = entries
	t.logger.Debug("font table ready", "entries", len(entries), "elapsed", time.Since(start).Round(time.Microsecond))
}
