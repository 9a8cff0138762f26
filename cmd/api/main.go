package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"filmorate/proj/internal/config"
	"filmorate/proj/internal/lib/logger"
	"filmorate/proj/internal/services"
	"filmorate/proj/internal/storage/memory"
	"filmorate/proj/internal/storage/postgres"
	"filmorate/proj/internal/storage/postgres/models"

	"github.com/joho/godotenv"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "config/local.yml", "path to config file")
	flag.Parse()

	godotenv.Load()
	cfg := config.MustLoad(*cfgPath)
	log := logger.SetupLogger(cfg.Debug)

	var storages services.Storages
	switch cfg.Storage {
	case config.StoragePostgres:
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		db, err := postgres.New(ctx, cfg.DB.Dsn, cfg.DB.MaxConns, cfg.DB.MaxConnIdleTime)
		if err != nil {
			panic(err)
		}
		defer db.Conn.Close()
		log.Info("database connection established")
		storages = services.Storages{
			Films:    &models.FilmModel{DB: db.Conn},
			Users:    &models.UserModel{DB: db.Conn},
			Catalogs: &models.CatalogModel{DB: db.Conn},
		}
	case config.StorageMemory:
		log.Info("using in-memory storage")
		storages = services.Storages{
			Films:    memory.NewFilms(),
			Users:    memory.NewUsers(),
			Catalogs: memory.NewSeededCatalogs(),
		}
	default:
		panic(fmt.Errorf("unknown storage variant: %q", cfg.Storage))
	}

	app := NewApplication(cfg, log, storages)
	if err := app.serve(); err != nil {
		app.log.Error("server stopped", "reason", err.Error())
		os.Exit(1)
	}
}
