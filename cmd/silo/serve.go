package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/silo"
	opshttp "github.com/aretw0/silo/internal/adapters/http"
	"github.com/aretw0/silo/internal/logging"
	"github.com/aretw0/silo/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a session store with its ops endpoint",
	Long:  `Starts a store against the configured snapshot driver and exposes health, readiness, stats and Prometheus metrics over HTTP. The store keeps autosaving until the process receives SIGINT or SIGTERM.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fatal("Error loading config: %v", err)
		}

		snapshots, err := cfg.BuildStore()
		if err != nil {
			fatal("Error building store: %v", err)
		}

		opts, err := cfg.StoreOptions()
		if err != nil {
			fatal("Error: %v", err)
		}

		logger := logging.New(slog.LevelInfo)
		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics(reg)

		opts = append(opts,
			silo.WithStore(snapshots),
			silo.WithLogger(logger),
			silo.WithMetrics(metrics),
		)

		store, err := silo.New(cfg.Location, opts...)
		if err != nil {
			fatal("Error creating store: %v", err)
		}

		addr, _ := cmd.Flags().GetString("addr")
		srv := &http.Server{
			Addr:    addr,
			Handler: opshttp.NewHandler(store, collectionName(cfg), reg),
		}

		go func() {
			logger.Info("ops server listening", "addr", addr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("ops server failed", "err", err)
			}
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		<-stop
		fmt.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("ops server shutdown", "err", err)
		}
		if err := store.Close(ctx); err != nil {
			logger.Warn("store close", "err", err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8484", "Ops server listen address")
	rootCmd.AddCommand(serveCmd)
}
