package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/notjagan/teamdex/pkg/bot"
	"github.com/notjagan/teamdex/pkg/catalog"
	"github.com/notjagan/teamdex/pkg/config"
	"github.com/notjagan/teamdex/pkg/model"
	"github.com/notjagan/teamdex/pkg/pokeapi"
	"github.com/notjagan/teamdex/pkg/session"
	"github.com/notjagan/teamdex/pkg/storage"
)

func provider(ctx context.Context, cfg config.Config) (catalog.Provider, func(), error) {
	switch cfg.Catalog.Source {
	case config.SourceDatabase:
		mdl, err := model.New(ctx, cfg.DB.Path, model.Options{
			Limit:     cfg.Catalog.Limit,
			SpriteURL: cfg.Catalog.SpriteURL,
		})
		if err != nil {
			return nil, nil, err
		}
		return mdl, func() { mdl.Close() }, nil
	default:
		client := pokeapi.New(pokeapi.Options{
			BaseURL: cfg.Catalog.BaseURL,
			Limit:   cfg.Catalog.Limit,
			Timeout: cfg.Timeout(),
		})
		return client, func() {}, nil
	}
}

func store(ctx context.Context, cfg config.Config) (storage.Storer, error) {
	if cfg.Storage.Path == "" {
		log.Println("No storage path set; teams will not outlive the process.")
		return storage.NewMemStore(), nil
	}

	return storage.NewSQLiteStore(ctx, cfg.Storage.Path)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Read()
	if err != nil {
		log.Fatal(err)
	}

	p, closeProvider, err := provider(ctx, *cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeProvider()

	st, err := store(ctx, *cfg)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Loading catalog from %v.", cfg.Catalog.Source)
	cat := catalog.Load(ctx, p, cfg.Catalog.Workers)

	mgr := session.NewManager(cat, p, storage.NewGateway(st))
	bot, err := bot.New(ctx, *cfg, mgr)
	if err != nil {
		log.Fatal(err)
	}

	err = bot.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
}
