// File: cmd/server/providers.go
package main

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"profilehub_backend/internal/config"
	"profilehub_backend/internal/platform/database"
	"profilehub_backend/internal/platform/logger"
)

// provideLogger builds the application logger with a cleanup that flushes
// buffered entries.
func provideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	l, err := logger.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return l, func() { _ = l.Sync() }, nil
}

// provideDatabase opens the GORM connection with a cleanup that closes it.
func provideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := database.NewGORM(cfg)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { database.CloseGORMDB(db) }, nil
}
