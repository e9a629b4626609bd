package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/captcha/pkg/cache"
	"github.com/matzehuels/captcha/pkg/fonts"
)

// fontCacheDir returns the directory holding system font lookups.
func fontCacheDir() (string, error) {
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fonts"), nil
}

// setupFontCache installs a file-backed font locator unless --no-cache is
// set. A cache that cannot be opened only costs speed, so it is logged and
// skipped.
func (c *CLI) setupFontCache() {
	if c.noCache {
		fonts.SetLocator(nil)
		return
	}
	dir, err := fontCacheDir()
	if err != nil {
		c.Logger.Debug("font cache disabled", "err", err)
		fonts.SetLocator(nil)
		return
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("font cache disabled", "dir", dir, "err", err)
		fonts.SetLocator(nil)
		return
	}
	fonts.SetLocator(fonts.NewLocator(fc, fonts.DefaultLocateTTL, c.Logger))
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the system font lookup cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget all cached font lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(cmd.OutOrStdout())
			dir, err := fontCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			if !dirExists(dir) {
				out.info("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Clear()
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			out.success("Cleared %d cached entries", count)
			out.detail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fontCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
