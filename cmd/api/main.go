package main

import (
	"context"
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "hotrodebabi/internal/adapters/http_server"
	"hotrodebabi/internal/adapters/observability"
	redisad "hotrodebabi/internal/adapters/redis"
	sesmail "hotrodebabi/internal/adapters/ses"
	"hotrodebabi/internal/app"
	"hotrodebabi/internal/catalog"
	"hotrodebabi/internal/domain"
	"hotrodebabi/internal/shared"
	mysqlrepo "hotrodebabi/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	var sender domain.EmailSender
	if cfg.EmailFrom != "" {
		s, err := sesmail.New(context.Background(), cfg.EmailFrom, cfg.EmailRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("SES sender init failed")
		}
		sender = s
	}

	hotels := app.NewHotelService(repo, cache, cfg.CacheTTL)
	monitor := app.NewExpiryMonitor(repo, nil)
	dispatcher := app.NewDispatcher(repo, sender, repo)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Store:      catalog.Default(),
		Hotels:     hotels,
		Monitor:    monitor,
		Dispatcher: dispatcher,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
