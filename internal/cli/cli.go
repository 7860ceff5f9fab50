package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cargoassist/internal/config"
	"github.com/matzehuels/cargoassist/pkg/buildinfo"
	"github.com/matzehuels/cargoassist/pkg/cache"
	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/cratedata"
	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

// appName is the application name used for display.
const appName = "cargoassist"

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
		Short:        "cargoassist completes dependencies in Cargo.toml manifests",
		Long:         `cargoassist suggests crate names, versions and feature flags while editing Cargo.toml, backed by the crates.io registry. It runs as a language server, an HTTP API, or one-shot from the command line.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/cargoassist/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the registry response backend")

	root.AddCommand(c.completeCommand())
	root.AddCommand(c.scanCommand())
	root.AddCommand(c.workspaceCommand())
	root.AddCommand(c.lspCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// stack is the registry-backed completion machinery shared by commands.
type stack struct {
	cfg     config.Config
	backend cache.Cache
	data    *cratedata.Service
	engine  *completion.Engine
}

// Close releases the response backend.
func (s *stack) Close() error {
	return s.backend.Close()
}

func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.noCache {
		cfg.Backend = config.BackendNone
	}
	return cfg, nil
}

// newStack loads the config and builds the crates client, the in-memory
// tiers and the engine on top of the configured backend.
func (c *CLI) newStack(ctx context.Context) (*stack, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	logger := loggerFromContext(ctx)

	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("response backend", "backend", cfg.Backend, "ttl", cfg.BackendTTL)

	client := crates.NewClient(backend, cfg.BackendTTL.Duration,
		crates.WithBaseURL(cfg.RegistryURL),
		crates.WithUserAgent(cfg.UserAgent),
		crates.WithRetries(cfg.Retries),
	)
	data, err := cratedata.New(client, cratedata.Options{
		IndexCapacity:  cfg.IndexCapacity,
		SearchCapacity: cfg.SearchCapacity,
		SearchTTL:      cfg.SearchTTL.Duration,
		Logger:         logger,
	})
	if err != nil {
		_ = backend.Close()
		return nil, err
	}

	engine := completion.NewEngine(data, manifest.NewWorkspace(logger), logger)
	return &stack{cfg: cfg, backend: backend, data: data, engine: engine}, nil
}

func newBackend(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Backend {
	case config.BackendFile:
		dir, err := cfg.ResolvedCacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	default:
		return cache.NewNullCache(), nil
	}
}
