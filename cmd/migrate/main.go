package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/bhujal/registry/internal/repository"
	"github.com/bhujal/registry/pkg/config"
	"github.com/bhujal/registry/pkg/database"
	"github.com/bhujal/registry/pkg/logger"
)

func main() {
	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	db, err := database.OpenPostgres(context.Background(), cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := repository.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	fmt.Fprintln(os.Stdout, "migrations completed")
}
