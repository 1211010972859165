package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"blogcanvas/internal/app/server"
	"blogcanvas/internal/config"
	"blogcanvas/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.NewWithLevel(conf.Env, conf.Logger.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := server.New(ctx, conf, log)
	if err != nil {
		log.Error("failed to start", logger.Err(err))
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	closeErr := app.Close()
	if runErr != nil {
		log.Error("server stopped with error", logger.Err(runErr))
		os.Exit(1)
	}
	if closeErr != nil {
		os.Exit(1)
	}
	log.Info("server stopped")
}
