package main

import (
	"context"

	"github.com/tgavazzi/hydromate/internal/app"
	"github.com/tgavazzi/hydromate/internal/cache"
	"github.com/tgavazzi/hydromate/internal/config"
	"github.com/tgavazzi/hydromate/internal/db"
	"github.com/tgavazzi/hydromate/internal/logger"
	"github.com/tgavazzi/hydromate/internal/mail"
	"github.com/tgavazzi/hydromate/internal/server"
	"github.com/tgavazzi/hydromate/internal/service/auth"
	"github.com/tgavazzi/hydromate/internal/service/profile"
	"github.com/tgavazzi/hydromate/internal/service/tracker"
	"github.com/tgavazzi/hydromate/internal/weather"
)

func main() {
	cfg := config.New()

	logger.InitFromConfig(cfg)
	log := logger.L()

	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log)
	mailer := mail.NewLogMailer(log)
	weatherClient := weather.NewClient(cfg)

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	router := server.NewRouter(appCtx,
		auth.NewRegistrar(appCtx, mailer),
		profile.NewRegistrar(appCtx),
		tracker.NewRegistrar(appCtx, weatherClient),
	)

	if err := server.Start(appCtx, router); err != nil {
		log.Error("server exited with error", "err", err)
	}
}
