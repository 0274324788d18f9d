package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"static-server/internal/server"
	"static-server/pkg/config"
)

func main() {
	// Configure logrus
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if config.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Addr:          config.Addr(),
		Root:          config.StaticRoot,
		Debug:         config.Debug,
		WatchInterval: config.WatchInterval,
	})

	if err := srv.ListenAndServe(ctx); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
