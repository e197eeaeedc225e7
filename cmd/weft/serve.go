package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/weft-ui/weft/el"
	"github.com/weft-ui/weft/pkg/middleware"
	"github.com/weft-ui/weft/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		addr       string
		configPath string
		devMode    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo counter app",
		Long: `Start a live server hosting the built-in counter component.

Useful as a smoke test for the full stack: SSR page, thin client,
websocket session, event dispatch, and patch streaming.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := server.DefaultConfig()
			if configPath != "" {
				loaded, err := server.LoadConfig(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if addr != "" {
				cfg.Address = addr
			}
			if devMode {
				cfg.DevMode = true
			}
			cfg.Title = "weft counter"

			logLevel := slog.LevelInfo
			if cfg.DevMode {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)

			metrics := middleware.NewPrometheus()
			srv := server.New(counterApp(), cfg,
				server.WithLogger(logger.With("component", "server")),
				server.WithMetrics(metrics),
				server.WithRuntimeMetrics(metrics),
				server.WithEventMiddleware(metrics.Events(), middleware.OpenTelemetry()),
			)

			printBanner()
			success("serving on %s", cfg.Address)
			info("page      http://localhost%s/", cfg.Address)
			info("metrics   http://localhost%s/metrics", cfg.Address)
			return srv.Run()
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to weft.yaml")
	cmd.Flags().BoolVar(&devMode, "dev", false, "development mode")

	return cmd
}

// counterApp is the demo root: a counter and a reset button.
func counterApp() *el.Component {
	return el.WithHooks(func(ctx *el.Ctx, _ el.Props) *el.VNode {
		count, setCount := el.UseState(ctx, 0)
		return el.Div(
			el.Class("counter"),
			el.H1(el.Text("weft counter")),
			el.P(el.Textf("count: %d", count)),
			el.Button(el.OnClick(func() { setCount(count + 1) }), el.Text("increment")),
			el.Button(el.OnClick(func() { setCount(0) }), el.Text("reset")),
		)
	})
}
