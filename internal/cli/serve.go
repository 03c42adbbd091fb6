package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/config"
	"github.com/evcraddock/rentdesk/internal/logging"
	"github.com/evcraddock/rentdesk/internal/metrics"
	"github.com/evcraddock/rentdesk/internal/telemetry"
	"github.com/evcraddock/rentdesk/internal/web"
)

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web dashboard",
		Long:  "Start an HTTP server rendering the admin and tenant dashboards from the tenancy API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides listen.addr)")

	return cmd
}

func runServe(ctx context.Context, listen string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if listen != "" {
		cfg.Listen.Addr = listen
	}

	logging.Setup(cfg.DevMode)

	shutdown, err := telemetry.Setup(ctx, "rentdesk")
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("flushing traces", "err", err)
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New(reg)

	opts := web.Options{Recorder: collector}
	if cfg.Metrics.On() {
		opts.Gatherer = reg
		opts.MetricsPath = cfg.Metrics.Path
	}

	srv, err := web.NewServer(newAPIClient(cfg, client.WithObserver(collector)), opts)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		watcher, err := config.NewWatcher(path, func(next *config.Config) {
			srv.SetAPI(newAPIClient(next, client.WithObserver(collector)))
			slog.Info("api client updated", "base_url", next.API.BaseURL)
		})
		if err != nil {
			slog.Warn("config hot-reload disabled", "err", err)
		} else {
			defer func() { _ = watcher.Stop() }()
		}
	}

	slog.Info("starting dashboard", "addr", cfg.Listen.Addr, "api", cfg.API.BaseURL, "config", path)
	return srv.ListenAndServe(ctx, cfg.Listen.Addr)
}
