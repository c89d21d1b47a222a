// Package cli implements the popover command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/buildinfo"
	"github.com/matzehuels/popover/pkg/cache"
	"github.com/matzehuels/popover/pkg/config"
	"github.com/matzehuels/popover/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "popover"

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
	config     config.Config
}

// New creates a new CLI instance with a default logger and the built-in
// configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Popover positions floating panels next to trigger elements",
		Long: `Popover resolves where a tooltip or popover panel should appear next to its
trigger, flipping to the opposite side when the viewport is too tight, and
models the hover, click and focus visibility state machines behind it.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: user config dir, if present)")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.galleryCommand())
	root.AddCommand(c.statesCommand())
	root.AddCommand(c.demoCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, attaches the logger to the command
// context and, at debug level, reports resolver and controller activity.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := newLogHooks(c.Logger)
		observability.SetPlacementHooks(hooks)
		observability.SetVisibilityHooks(hooks)
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// loadConfig reads an explicit config path, or the per-user file when it
// exists. It returns the path that was used, if any.
func loadConfig(explicit string) (config.Config, string, error) {
	if explicit != "" {
		cfg, err := config.Load(explicit)
		return cfg, explicit, err
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Default(), "", nil
	}
	if _, err := os.Stat(path); err != nil {
		return config.Default(), "", nil
	}
	cfg, err := config.Load(path)
	return cfg, path, err
}

// =============================================================================
// Cache
// =============================================================================

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/popover/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}
