package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/finwatch/asset/cbr"
	"github.com/finwatch/asset/config"
	"github.com/finwatch/asset/logger"
	"github.com/finwatch/asset/server"
	"github.com/finwatch/asset/store"
)

func main() {
	params, err := build()
	if err != nil {
		log.Fatal(err)
	}

	if err = run(params); err != nil {
		log.Fatal(err)
	}
}

func build() (runParams, error) {
	cfg, err := config.LoadWithDefaults("config/config.yaml", "config/logging.yaml")
	if err != nil {
		return runParams{}, fmt.Errorf("load config: %w", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		return runParams{}, fmt.Errorf("initialize logger: %w", err)
	}

	st := store.NewSQLiteStore(store.Params{
		Path:   cfg.Store.Path,
		Logger: appLogger,
	})

	rates := cbr.New(cbr.Params{
		DailyURL:         cfg.CBR.DailyURL,
		KeyIndicatorsURL: cfg.CBR.KeyIndicatorsURL,
		UserAgent:        cfg.CBR.UserAgent,
		HTTPClient:       cfg.CBR.HTTPClient,
	})

	srv := server.New(server.Params{
		Config: cfg.Server,
		Store:  st,
		CBR:    rates,
		Logger: appLogger,
	})

	return runParams{
		Config: cfg,
		Logger: appLogger,
		Store:  st,
		Server: srv,
	}, nil
}

type runParams struct {
	Config *config.AppConfig
	Logger logger.Logger
	Store  *store.SQLiteStore
	Server *server.Server
}

// run starts all components and runs the application until shutdown.
func run(p runParams) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer p.Logger.Sync()

	if err := p.Store.Open(ctx); err != nil {
		return fmt.Errorf("open asset store: %w", err)
	}
	defer p.Store.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- p.Server.Run(ctx)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	cancel()
	return <-errCh
}
