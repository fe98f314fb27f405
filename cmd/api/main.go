package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption-backend/internal/adapters/auth/accounts"
	"pet-adoption-backend/internal/adapters/mail/async"
	"pet-adoption-backend/internal/adapters/mail/smtp"
	pg "pet-adoption-backend/internal/adapters/storage/postgres"
	"pet-adoption-backend/internal/config"
	"pet-adoption-backend/internal/domain/reminders"
	"pet-adoption-backend/internal/platform/logger"
	"pet-adoption-backend/internal/ports/auth"
	"pet-adoption-backend/internal/ports/mail"
	"pet-adoption-backend/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
	} else {
		lg.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	var mailer mail.Sender
	var asyncSender *async.Sender
	if cfg.SMTP.Configured() {
		smtpSender, err := smtp.New(smtp.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		if err != nil {
			log.Fatalf("smtp: %v", err)
		}
		asyncSender = async.New(smtpSender, 4, 64, lg)
		mailer = asyncSender
	}
	// mailer nil => el router cae al recorder in-memory (modo dev)

	var verifier auth.AuthVerifier
	if cfg.Accounts.Configured() {
		client, err := accounts.NewClient(accounts.Config{
			BaseURL: cfg.Accounts.BaseURL,
			APIKey:  cfg.Accounts.APIKey,
		})
		if err != nil {
			log.Fatalf("accounts: %v", err)
		}
		verifier = accounts.NewVerifier(client)
	}

	var intervals reminders.IntervalTable
	if len(cfg.Intervals) > 0 {
		intervals = reminders.NewIntervalTable(cfg.Intervals)
	}

	handler, remindersSvc := router.New(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Mailer:       mailer,
		Intervals:    intervals,
		ProductName:  cfg.ProductName,
		Logger:       lg,
	})

	sched, err := reminders.NewScheduler(remindersSvc, cfg.ReminderHour, cfg.Location, lg)
	if err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	sched.Start()

	// Pase inicial al arrancar, sin bloquear el listen.
	go func() {
		if _, err := remindersSvc.RunPass(context.Background()); err != nil {
			lg.Error("startup reminder pass failed", map[string]any{"error": err.Error()})
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("starting server", map[string]any{"addr": cfg.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	lg.Info("shutting down", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)

	sched.Stop()
	if asyncSender != nil {
		asyncSender.Close() // drena la cola de mails pendientes
	}
}
