package fonts

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/flopp/go-findfont"

	"github.com/matzehuels/captcha/pkg/cache"
	"github.com/matzehuels/captcha/pkg/errors"
)

// DefaultLocateTTL is how long a resolved system font path is remembered.
const DefaultLocateTTL = 7 * 24 * time.Hour

// Locator resolves system font names to files with go-findfont and remembers
// the result. A lookup walks every platform font directory, so a warm cache
// saves most of the startup time of a render.
type Locator struct {
	cache  cache.Cache
	ttl    time.Duration
	logger *log.Logger
}

// NewLocator creates a locator. A nil cache disables caching and a nil
// logger discards output.
func NewLocator(c cache.Cache, ttl time.Duration, logger *log.Logger) *Locator {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Locator{cache: c, ttl: ttl, logger: logger}
}

// Find returns the path of the font file for name. Existing file paths are
// returned as is.
func (l *Locator) Find(ctx context.Context, name string) (string, error) {
	if isFile(name) {
		return name, nil
	}

	key := "font:" + name
	if data, ok, err := l.cache.Get(ctx, key); err != nil {
		l.logger.Debug("font cache read failed", "font", name, "err", err)
	} else if ok {
		if path := string(data); isFile(path) {
			return path, nil
		}
		_ = l.cache.Delete(ctx, key)
	}

	start := time.Now()
	path, err := findfont.Find(name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFontNotFound, err, "font %q", name)
	}
	l.logger.Debug("system font located", "font", name, "path", path, "elapsed", time.Since(start).Round(time.Millisecond))

	if err := l.cache.Set(ctx, key, []byte(path), l.ttl); err != nil {
		l.logger.Debug("font cache write failed", "font", name, "err", err)
	}
	return path, nil
}

var (
	locatorMu sync.RWMutex
	locator   = NewLocator(nil, 0, nil)
)

// SetLocator replaces the locator used by [Resolve] for system font names.
// Passing nil restores the uncached default.
func SetLocator(l *Locator) {
	if l == nil {
		l = NewLocator(nil, 0, nil)
	}
	locatorMu.Lock()
	locator = l
	locatorMu.Unlock()
}

func currentLocator() *Locator {
	locatorMu.RLock()
	defer locatorMu.RUnlock()
	return locator
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
