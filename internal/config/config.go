// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	PostgresURL    string
	PagesDir       string
	AssetsDir      string
	KafkaBrokers   []string
	OrderTopic     string
	MigrateOnStart bool
	GuestUserID    int64
	MaxBodyBytes   int64
}

var ErrMissingPostgresURL = errors.New("POSTGRES_URL environment variable is required")

// Load returns the storefront configuration. Only POSTGRES_URL is mandatory.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:           Getenv("PORT", "6010"),
		PostgresURL:    os.Getenv("POSTGRES_URL"),
		PagesDir:       Getenv("PAGES_DIR", "src"),
		AssetsDir:      Getenv("ASSETS_DIR", "."),
		KafkaBrokers:   SplitCSV(os.Getenv("KAFKA_BROKERS")),
		OrderTopic:     Getenv("ORDER_TOPIC", "order.placed"),
		MigrateOnStart: getbool("MIGRATE_ON_START", true),
		GuestUserID:    getint("GUEST_USER_ID", 1),
		MaxBodyBytes:   getint("MAX_BODY_BYTES", 1<<20),
	}
	if cfg.PostgresURL == "" {
		return Config{}, ErrMissingPostgresURL
	}
	return cfg, nil
}

// Getenv returns the value of k, or def when unset or empty.
func Getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int64) int64 {
	v, err := strconv.ParseInt(os.Getenv(k), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func getbool(k string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return v
}

// SplitCSV splits a comma separated list, dropping blanks.
func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type MailerConfig struct {
	Port         string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
}

// LoadMailer returns the mailer configuration. An empty SMTPHost means
// messages are logged instead of delivered.
func LoadMailer() MailerConfig {
	_ = godotenv.Load()

	return MailerConfig{
		Port:         Getenv("PORT", "8084"),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     int(getint("SMTP_PORT", 25)),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		From:         Getenv("MAIL_FROM", "orders@storefront.local"),
	}
}

type NotifierConfig struct {
	KafkaBrokers []string
	OrderTopic   string
	GroupID      string
	MailerURL    string
}

var (
	ErrMissingKafkaBrokers = errors.New("KAFKA_BROKERS environment variable is required")
	ErrMissingMailerURL    = errors.New("MAILER_URL environment variable is required")
)

func LoadNotifier() (NotifierConfig, error) {
	_ = godotenv.Load()

	cfg := NotifierConfig{
		KafkaBrokers: SplitCSV(os.Getenv("KAFKA_BROKERS")),
		OrderTopic:   Getenv("ORDER_TOPIC", "order.placed"),
		GroupID:      Getenv("NOTIFIER_GROUP_ID", "receipt-notifier"),
		MailerURL:    os.Getenv("MAILER_URL"),
	}
	if len(cfg.KafkaBrokers) == 0 {
		return NotifierConfig{}, ErrMissingKafkaBrokers
	}
	if cfg.MailerURL == "" {
		return NotifierConfig{}, ErrMissingMailerURL
	}
	return cfg, nil
}

type CartConfig struct {
	StorefrontURL string
	RedisAddr     string
	Owner         string
	File          string
}

// LoadCart returns the cart CLI configuration. Carts live in Redis when
// REDIS_ADDR is set and in File otherwise.
func LoadCart() CartConfig {
	_ = godotenv.Load()

	file := os.Getenv("CART_FILE")
	if file == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		file = filepath.Join(dir, "storefront", "cart.json")
	}

	return CartConfig{
		StorefrontURL: Getenv("STOREFRONT_URL", "http://localhost:6010"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		Owner:         Getenv("CART_OWNER", "guest"),
		File:          file,
	}
}
