package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tripdiary/internal/client/api"
	"tripdiary/internal/client/cli"
	"tripdiary/internal/client/config"
	"tripdiary/internal/client/localstore"
	"tripdiary/internal/client/storage"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("tripdiary: ")
	os.Exit(run())
}

func run() int {
	cfg, args, err := config.Load(os.Args[1:], os.Stderr)
	if err != nil {
		if !errors.Is(err, config.ErrInvalidFlags) {
			log.Printf("%v", err)
		}
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := storage.OpenSQLite(ctx, cfg.DataPath)
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer kv.Close()

	app := cli.NewApp(localstore.New(kv), api.New(cfg.ServerURL, cfg.Token, cfg.Timeout), os.Stdout)
	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		log.Printf("%v", err)
		return 1
	}
	return 0
}
