package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"hotrodebabi/internal/adapters/observability"
	sesmail "hotrodebabi/internal/adapters/ses"
	"hotrodebabi/internal/app"
	"hotrodebabi/internal/domain"
	"hotrodebabi/internal/shared"
	mysqlrepo "hotrodebabi/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)
	observability.Serve()

	log.Info().
		Str("monitor_schedule", cfg.MonitorSchedule).
		Str("mailer_schedule", cfg.MailerSchedule).
		Int("mailer_workers", cfg.MailerWorkers).
		Msg("monitor starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	monitor := app.NewExpiryMonitor(repo, nil)

	c := cron.New()

	if _, err := c.AddFunc(cfg.MonitorSchedule, func() {
		sum, err := monitor.Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("expiry monitor run failed")
			return
		}
		observability.ObserveMonitor("expired", sum.Expired)
		observability.ObserveMonitor("warned_7d", sum.Warned7d)
		observability.ObserveMonitor("warned_1d", sum.Warned1d)
		observability.ObserveMonitor("step_error", len(sum.StepError))
		log.Info().
			Int("expired", sum.Expired).
			Int("warned_7d", sum.Warned7d).
			Int("warned_1d", sum.Warned1d).
			Msg("expiry monitor run finished")
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to schedule expiry monitor")
	}

	if cfg.EmailFrom != "" {
		var sender domain.EmailSender
		s, err := sesmail.New(ctx, cfg.EmailFrom, cfg.EmailRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("SES sender init failed")
		}
		sender = s
		mailer := app.NewMailer(repo, repo, sender, cfg.MailerWorkers, cfg.MailerBatch)

		if _, err := c.AddFunc(cfg.MailerSchedule, func() {
			sent, failed, err := mailer.Drain(ctx)
			if err != nil {
				log.Error().Err(err).Msg("notification mailer run failed")
				return
			}
			log.Info().Int("sent", sent).Int("failed", failed).Msg("notification mailer run finished")
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to schedule notification mailer")
		}
	} else {
		log.Warn().Msg("EMAIL_FROM empty; notification mailer disabled")
	}

	c.Start()
	log.Info().Msg("schedules registered")

	// block until asked to stop, then let in-flight jobs finish
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	<-c.Stop().Done()
}
