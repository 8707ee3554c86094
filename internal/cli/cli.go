// Package cli implements the daipendency command-line interface.
//
// # Commands
//
//   - extract: document the library at a path
//   - extract-dep: document a dependency of the library at --dependant
//   - languages: list supported languages
//   - cache: inspect or clear downloaded crates and cached API responses
//   - completion: generate shell completion scripts
//
// Documents are written to stdout (or --output). Logs, spinners and status
// lines go to stderr, so the document can be piped.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/daipendency/daipendency/internal/config"
	"github.com/daipendency/daipendency/pkg/buildinfo"
	"github.com/daipendency/daipendency/pkg/cache"
	"github.com/daipendency/daipendency/pkg/extractor/rust"
	"github.com/daipendency/daipendency/pkg/integrations/crates"
	"github.com/daipendency/daipendency/pkg/languages"
	"github.com/daipendency/daipendency/pkg/library"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	noCache bool
	offline bool
}

// New creates a new CLI instance logging to w.
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
		Use:   "daipendency",
		Short: "Daipendency documents library APIs for AI coding agents",
		Long: `Daipendency extracts the public API of a library and its README into a
single markdown document, ready to be handed to an LLM as context.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			registerHooks(c.Logger)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "do not cache crates.io responses")
	root.PersistentFlags().BoolVar(&c.offline, "offline", false, "never download dependencies")

	root.AddCommand(c.extractCommand())
	root.AddCommand(c.extractDepCommand())
	root.AddCommand(c.languagesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration and applies command-line overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	if c.offline {
		cfg.Offline = true
	}
	return cfg, nil
}

// newLoader builds a library loader whose extractors follow cfg.
func (c *CLI) newLoader(cfg *config.Config) (*library.Loader, error) {
	opts := []rust.Option{rust.WithCargoHome(cfg.Cargo.Home)}
	if !cfg.Offline {
		backend, err := c.newCache(cfg)
		if err != nil {
			return nil, err
		}
		client := crates.NewClient(backend, cfg.Cache.TTL)
		opts = append(opts, rust.WithRegistry(client, cfg.CratesDir()))
	}
	reg := languages.New(languages.Builtin(opts...)...)
	return library.NewLoader(reg, library.WithLogger(c.Logger)), nil
}

func (c *CLI) newCache(cfg *config.Config) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	backend, err := cache.NewFileCache(cfg.HTTPCacheDir())
	if err != nil {
		c.Logger.Warn("response cache disabled", "dir", cfg.HTTPCacheDir(), "err", err)
		return cache.NewNullCache(), nil
	}
	return backend, nil
}
