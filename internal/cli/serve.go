package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/logging"
	"github.com/rshade/netzero/internal/server"
)

// NewServeCmd creates the serve command: runs the JSON API until SIGINT or
// SIGTERM, then shuts down gracefully.
func NewServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as a JSON HTTP API",
		Long: `Serves the calculator over HTTP:

  POST /api/v1/offset        existing-panel calculation
  POST /api/v1/plan          from-scratch plan
  POST /api/v1/report/pdf    PDF report download
  POST /api/v1/report/xlsx   XLSX report download
  GET  /api/v1/units         accepted units
  GET  /api/v1/grid-factors  grid factor presets
  GET  /healthz              liveness
  GET  /metrics              Prometheus metrics`,
		Example: `  netzero serve
  netzero serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.GetGlobalConfig()
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := logging.ComponentLogger(*logging.FromContext(ctx), "server")
			cmd.PrintErrf("Serving on %s\n", cfg.Server.Addr)
			return server.New(cfg, log).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
