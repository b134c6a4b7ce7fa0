package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/pyramid-service/internal/app/pyramids"
	"github.com/preston-bernstein/pyramid-service/internal/config"
	"github.com/preston-bernstein/pyramid-service/internal/generator"
	"github.com/preston-bernstein/pyramid-service/internal/logging"
	"github.com/preston-bernstein/pyramid-service/internal/themes"
)

// Version is stamped at build time with -ldflags "-X .../internal/cli.Version=...".
var Version = "dev"

const (
	appName         = "pyramid"
	defaultLogLevel = "warn"
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(1)
	}
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	logLevel   string
	logFormat  string
	themesFile string
}

// app is built once per invocation from config plus flags.
type app struct {
	cfg    config.Config
	logger *slog.Logger
	svc    *pyramids.Service
}

func newRootCmd() *cobra.Command {
	var g globals

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Generate and iterate on themed football league pyramids",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level (debug, info, warn, error); defaults to warn, or LOG_LEVEL for serve")
	cmd.PersistentFlags().StringVar(&g.logFormat, "log-format", "", "log format (text or json)")
	cmd.PersistentFlags().StringVar(&g.themesFile, "themes-file", "", "YAML file with extra themes (overrides PYRAMID_THEMES_FILE)")

	cmd.AddCommand(
		generateCmd(&g),
		resampleCmd(&g),
		showCmd(&g),
		themesCmd(&g),
		serveCmd(&g),
		versionCmd(),
	)
	return cmd
}

// loadConfig applies the persistent flags on top of the environment.
func (g *globals) loadConfig(defaultLevel string) config.Config {
	cfg := config.Load()
	if g.themesFile != "" {
		cfg.ThemesFile = g.themesFile
	}
	if g.logFormat != "" {
		cfg.Log.Format = g.logFormat
	}
	switch {
	case g.logLevel != "":
		cfg.Log.Level = g.logLevel
	case defaultLevel != "":
		cfg.Log.Level = defaultLevel
	}
	return cfg
}

func newLogger(cfg config.Config, errOut io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: appName,
		Version: Version,
		Output:  errOut,
	})
}

// newApp wires the generator and service used by the file-based commands.
func (g *globals) newApp(cmd *cobra.Command) (*app, error) {
	cfg := g.loadConfig(defaultLogLevel)
	logger := newLogger(cfg, cmd.ErrOrStderr())

	registry, err := themes.Build(cfg.ThemesFile)
	if err != nil {
		return nil, err
	}
	svc := pyramids.NewService(generator.New(registry),
		pyramids.WithLogger(logger),
		pyramids.WithDefaultTheme(cfg.DefaultTheme),
	)
	return &app{cfg: cfg, logger: logger, svc: svc}, nil
}
