package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/captcha/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if dir != "/tmp/xdg-cache/captcha" {
			t.Errorf("cacheDir() = %q, want /tmp/xdg-cache/captcha", dir)
		}
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", "")
		t.Setenv("HOME", home)
		dir, err := cacheDir()
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(home, ".cache", "captcha"); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestCachePath(t *testing.T) {
	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), filepath.Join("captcha", "fonts")) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCacheClear(t *testing.T) {
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("clearing an empty cache: %v", err)
	}

	xdg := t.TempDir()
	fc, err := cache.NewFileCache(filepath.Join(xdg, appName, "fonts"))
	if err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(context.Background(), "font:Some", []byte("/x.ttf"), 0); err != nil {
		t.Fatal(err)
	}

	root := New(&strings.Builder{}, LogInfo).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", xdg)
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, hit, _ := fc.Get(context.Background(), "font:Some"); hit {
		t.Error("entry should be cleared")
	}
}
