package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/captcha/pkg/buildinfo"
	"github.com/matzehuels/captcha/pkg/captcha"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "captcha"

	// configFileName is looked up in the config directory when --config is
	// not given.
	configFileName = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	gen        generatorFlags
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Generate distorted text images",
		Long:         `captcha renders text into noisy, warped images that people can read and machines struggle with.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.setupFontCache()
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default: $XDG_CONFIG_HOME/captcha/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "do not cache system font lookups")
	c.gen.register(root.PersistentFlags())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Generator Factory
// =============================================================================

// resolveConfig merges defaults, the configuration file and flags, in that
// order of increasing precedence.
func (c *CLI) resolveConfig(cmd *cobra.Command) (captcha.Config, error) {
	path := c.configPath
	if path == "" {
		if p, err := defaultConfigPath(); err == nil && fileExists(p) {
			path = p
		}
	}

	cfg := captcha.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = loadConfigFile(path); err != nil {
			return cfg, err
		}
		c.Logger.Debug("config loaded", "path", path)
	}
	c.gen.apply(cmd.Flags(), &cfg)
	return cfg, cfg.ValidateAndSetDefaults()
}

// newGenerator builds a generator from the resolved configuration.
func (c *CLI) newGenerator(cmd *cobra.Command) (*captcha.Generator, error) {
	cfg, err := c.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	return captcha.New(cfg, captcha.WithLogger(loggerFromContext(cmd.Context())))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/captcha/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/captcha/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

func defaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
