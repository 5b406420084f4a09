package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/tgavazzi/hydromate/internal/cache"
	"github.com/tgavazzi/hydromate/internal/config"
)

// AppContext holds shared dependencies (DB, Redis, Logger, config).
// Handlers receive it explicitly instead of reading process globals.
type AppContext struct {
	Cfg        *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
}

// New creates a new AppContext.
func New(cfg *config.Config, db *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Cfg:        cfg,
		DB:         db,
		RedisCache: rdb,
		Logger:     logger,
	}
}
