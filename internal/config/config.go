// Package config junta toda la lectura de env en un solo lugar.
// En dev, un .env en el working dir se carga best-effort vía godotenv.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"pet-adoption-backend/internal/domain/reminders"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (s SMTP) Configured() bool {
	return strings.TrimSpace(s.Host) != "" && strings.TrimSpace(s.From) != ""
}

type Accounts struct {
	BaseURL string
	APIKey  string
}

func (a Accounts) Configured() bool {
	return strings.TrimSpace(a.BaseURL) != "" && strings.TrimSpace(a.APIKey) != ""
}

type Config struct {
	Addr        string
	DBDSN       string // vacío => repos in-memory (dev)
	ProductName string

	// Hora local del pase diario de recordatorios.
	ReminderHour int
	Location     *time.Location

	// nil => tabla default
	Intervals map[string]int

	SMTP     SMTP
	Accounts Accounts
}

func Load() (Config, error) {
	_ = godotenv.Load() // sin .env no pasa nada

	cfg := Config{
		Addr:         ":8080",
		DBDSN:        strings.TrimSpace(os.Getenv("DB_DSN")),
		ProductName:  strings.TrimSpace(os.Getenv("PRODUCT_NAME")),
		ReminderHour: 8,
		Location:     time.Local,
	}

	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		cfg.Addr = ":" + v
	}
	if cfg.ProductName == "" {
		cfg.ProductName = "PetAdopt"
	}

	if v := strings.TrimSpace(os.Getenv("REMINDER_HOUR")); v != "" {
		h, err := strconv.Atoi(v)
		if err != nil || h < 0 || h > 23 {
			return Config{}, fmt.Errorf("REMINDER_HOUR must be 0-23, got %q", v)
		}
		cfg.ReminderHour = h
	}

	if v := strings.TrimSpace(os.Getenv("REMINDER_TZ")); v != "" {
		loc, err := time.LoadLocation(v)
		if err != nil {
			return Config{}, fmt.Errorf("REMINDER_TZ: %w", err)
		}
		cfg.Location = loc
	}

	intervals, err := reminders.ParseIntervals(os.Getenv("VACCINE_INTERVALS"))
	if err != nil {
		return Config{}, fmt.Errorf("VACCINE_INTERVALS: %w", err)
	}
	cfg.Intervals = intervals

	cfg.SMTP = SMTP{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		Username: strings.TrimSpace(os.Getenv("SMTP_USERNAME")),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     strings.TrimSpace(os.Getenv("SMTP_FROM")),
	}
	if v := strings.TrimSpace(os.Getenv("SMTP_PORT")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return Config{}, fmt.Errorf("SMTP_PORT must be a positive number, got %q", v)
		}
		cfg.SMTP.Port = p
	}

	cfg.Accounts = Accounts{
		BaseURL: strings.TrimSpace(os.Getenv("ACCOUNTS_BASE_URL")),
		APIKey:  strings.TrimSpace(os.Getenv("ACCOUNTS_API_KEY")),
	}

	return cfg, nil
}
