package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/pyramid-service/internal/server"
)

// skipRunEnv builds the server without serving; used by smoke tests.
const skipRunEnv = "SKIP_SERVER_RUN"

func serveCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service backed by the pyramid library",
		Long: "Serve exposes themes and stored pyramids over HTTP. Configuration comes from the\n" +
			"environment (PORT, PYRAMID_LIBRARY_DIR, METRICS_ENABLED, ...).",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := g.loadConfig("")
			logger := newLogger(cfg, cmd.ErrOrStderr())

			srv, err := server.New(cfg, logger)
			if err != nil {
				return err
			}
			if os.Getenv(skipRunEnv) == "1" {
				return nil
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			srv.Run(ctx, stop)
			return nil
		},
	}
}
