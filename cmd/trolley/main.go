// Command trolley is a terminal client for the store/cart service. main
// wires configuration and the shared components; the command tree lives
// in internal/cli.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"trolley/internal/app"
	"trolley/internal/cli"
	"trolley/internal/debug"
	"trolley/internal/platform/config"
	"trolley/internal/platform/logger"
	"trolley/internal/platform/metrics"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	a, err := app.New(cfg, app.WithLogger(log), app.WithMetrics(metrics.NewDefault()))
	if err != nil {
		log.Error("startup failed", "err", err)
		os.Exit(1)
	}

	if cfg.DebugAddr != "" {
		srv := debug.NewServer(cfg.DebugAddr)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("debug listener failed", "err", err)
			}
		}()
	}

	ctx := context.Background()
	if err := a.Bootstrap(ctx); err != nil {
		// A stale stored credential is routine; the session is already
		// anonymous again.
		log.Info("stored session no longer valid", "err", err)
	}

	root := cli.New(a)
	if err := root.ExecuteContext(ctx); err != nil {
		if a.HandleAuthFailure(err) {
			fmt.Fprintln(os.Stderr, "session expired, run 'trolley login' and try again")
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
