package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"bitwise74/reelhub-api/app"
	"bitwise74/reelhub-api/config"
	"bitwise74/reelhub-api/db"
	"bitwise74/reelhub-api/internal/service"
	"bitwise74/reelhub-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	flags := pflag.NewFlagSet("reelhub-api", pflag.ExitOnError)
	config.Flags(flags)
	flags.Parse(os.Args[1:])

	path, _ := flags.GetString("config")

	cfg, err := config.Load(path, flags)
	if err != nil {
		if errors.Is(err, config.ErrNoSecret) {
			fmt.Printf("No JWT secret configured. Set jwt.secret or JWT_SECRET, for example to:\n\n%s\n", config.GenSecret())
			os.Exit(1)
		}

		panic(err)
	}

	if _, err := logger.Setup(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	s, err := db.New(cfg)
	if err != nil {
		zap.L().Fatal("Failed to open storage", zap.Error(err))
	}

	d, err := app.NewDeps(cfg, s)
	if err != nil {
		zap.L().Fatal("Failed to set up dependencies", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	service.OrphanCleanup(ctx, cfg.Cleanup.Interval, s)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Host.Port),
		Handler:           app.NewRouter(cfg, d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage.Type))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Failed to shut down server", zap.Error(err))
	}

	if err := s.Close(shutdownCtx); err != nil {
		zap.L().Error("Failed to close storage", zap.Error(err))
	}
}
