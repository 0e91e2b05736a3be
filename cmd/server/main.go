// Command server runs the token analysis HTTP service: the five-phase
// pipeline exposed under /api/analyze, plus stored token records backed by
// MongoDB.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/tokenscope/core/config"
	"github.com/dmitrymomot/tokenscope/core/server"
	"github.com/dmitrymomot/tokenscope/integration/database/mongo"
	"github.com/dmitrymomot/tokenscope/internal/api"
	"github.com/dmitrymomot/tokenscope/internal/storage"
	"github.com/dmitrymomot/tokenscope/pkg/logger"
)

type appConfig struct {
	DatabaseName string `env:"MONGODB_DATABASE" envDefault:"tokenscope"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(logCfg)

	if err := run(ctx, log); err != nil {
		log.Error("server exited with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var (
		appCfg    appConfig
		apiCfg    api.Config
		mongoCfg  mongo.Config
		serverCfg server.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&apiCfg)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&serverCfg)

	client, err := mongo.New(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error("failed to disconnect from mongodb", logger.Error(err))
		}
	}()

	db := client.Database(appCfg.DatabaseName)
	repo := storage.NewRepository(db)

	handler := api.New(log, repo, mongo.Healthcheck(client), apiCfg)

	srv, err := server.NewFromConfig(serverCfg, server.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, handler))

	return g.Wait()
}
