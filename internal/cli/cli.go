package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lumentrace/lumen/pkg/buildinfo"
	"github.com/lumentrace/lumen/pkg/cache"
	"github.com/lumentrace/lumen/pkg/history"
	"github.com/lumentrace/lumen/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "lumen"

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
	Config *Config

	// scenePath is bound to the persistent --config flag.
	scenePath string
	verbose   bool
}

// New creates a new CLI instance with a default logger and the user config
// file loaded (if present).
func New(w io.Writer, level log.Level) *CLI {
	cfg, err := LoadConfig()
	logger := newLogger(w, level)
	if err != nil {
		logger.Warn("ignoring malformed config file", "err", err)
		cfg = &Config{}
	}
	return &CLI{
		Logger: logger,
		Config: cfg,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "lumen",
		Short:   "Lumen renders scene descriptions by path tracing",
		Long:    `Lumen is an offline path-tracing renderer. It reads a declarative YAML scene description and renders a PNG image by Monte-Carlo light transport, or procedurally generates scenes to start from.`,
		Version: buildinfo.Version,
		// main prints the error and owns the exit code.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.scenePath, "config", "c", "", "scene description file (.yaml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.galleryCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The reporter may be nil
// for commands that don't show stage progress.
func (c *CLI) newRunner(ctx context.Context, noCache bool, reporter pipeline.StageReporter) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.Reporter = reporter
	if hist, err := history.NewFileStore(""); err == nil {
		runner.History = hist
	}
	return runner, nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Backend == "none" {
		return cache.NewNullCache(), nil
	}
	if c.Config.Cache.Backend == "redis" {
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/lumen/).
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
