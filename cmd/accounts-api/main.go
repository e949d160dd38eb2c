package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vexora-shop/accounts/internal/config"
	"github.com/vexora-shop/accounts/internal/logger"
	"github.com/vexora-shop/accounts/internal/router"
	"github.com/vexora-shop/accounts/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.Logging.Level, cfg.Public.Logging.JSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps.Janitor.StartBackgroundCleanup(ctx, cfg.CleanupInterval())

	r := router.New(deps)

	addr := fmt.Sprintf(":%d", cfg.Public.Server.Port)
	server := &http.Server{Addr: addr, Handler: r}

	go func() {
		<-ctx.Done()
		logger.Log.Info("shutting down")
		server.Shutdown(context.Background())
	}()

	logger.Log.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
