package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaronsummercloud/recipe-api-project/internal/server/config"
	"github.com/aaronsummercloud/recipe-api-project/internal/shared/logger"
)

// bootstrap читает конфиг, создаёт логгер и подключается к БД.
func bootstrap(ctx context.Context, configPath string) (*config.Config, *logger.HTTPLogger, *sql.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	log, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		Console:    cfg.Log.Console,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("logger: %w", err)
	}

	if err := config.Init(ctx, cfg.DB, cfg.Migrations, log); err != nil {
		_ = log.Sync()
		return nil, nil, nil, fmt.Errorf("db: %w", err)
	}

	return cfg, log, config.GetDB(), nil
}
