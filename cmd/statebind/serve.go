package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/statebind/statebind/internal/config"
	"github.com/statebind/statebind/pkg/bind"
	"github.com/statebind/statebind/pkg/graph"
	"github.com/statebind/statebind/pkg/live"
	"github.com/statebind/statebind/pkg/observe"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the live bridge server",
		Long: `Run the websocket bridge around a demo reactive root.

Clients connect to /live, receive one frame per flush, and may send
{"property": ..., "value": ...} messages to write properties back.
Prometheus metrics are exposed on /metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadLive()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return runServe(cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides STATEBIND_ADDR)")

	return cmd
}

func runServe(cfg config.Live) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	metrics := live.NewMetrics(live.WithNamespace(cfg.MetricsNamespace))
	tracing := live.NewTracing()

	srv := live.NewServer(nil,
		live.WithLogger(logger.With("component", "live")),
		live.WithMetrics(metrics),
		live.WithTracing(tracing),
	)

	root, err := bind.Build(demoData(), demoDerivations(),
		bind.WithLogger(logger),
		bind.WithAnalyzer(graph.DeclaredAnalyzer{}),
		bind.WithRecorder(metrics),
		bind.OnFlush(srv.FlushHook()),
	)
	if err != nil {
		return fmt.Errorf("assemble root: %w", err)
	}
	defer root.Close()
	srv.Attach(root)

	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("live bridge listening", "addr", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// demoData is the raw state of the demo root: a task list with a
// nested filter object.
func demoData() map[string]any {
	return map[string]any{
		"tasks": []any{
			map[string]any{"title": "wire the bridge", "done": true},
			map[string]any{"title": "stream flushes", "done": false},
		},
		"filter": map[string]any{"showDone": true},
		"title":  "statebind demo",
	}
}

func demoDerivations() []graph.Def {
	return []graph.Def{
		{
			Name: "openCount",
			Deps: []string{"tasks"},
			Fn: func(v graph.View) any {
				tasks, _ := observe.Snapshot(v.Get("tasks")).([]any)
				n := 0
				for _, t := range tasks {
					if m, ok := t.(map[string]any); ok && m["done"] != true {
						n++
					}
				}
				return n
			},
		},
		{
			Name: "summary",
			Deps: []string{"title", "openCount"},
			Fn: func(v graph.View) any {
				return fmt.Sprintf("%v: %v open", v.Get("title"), v.Get("openCount"))
			},
		},
	}
}
