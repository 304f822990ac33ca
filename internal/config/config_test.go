package config

import (
	"errors"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("requires POSTGRES_URL", func(t *testing.T) {
		t.Setenv("POSTGRES_URL", "")

		_, err := Load()
		if !errors.Is(err, ErrMissingPostgresURL) {
			t.Errorf("expected ErrMissingPostgresURL, got %v", err)
		}
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("POSTGRES_URL", "postgres://shop@localhost/shop")
		t.Setenv("PORT", "")
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("GUEST_USER_ID", "")
		t.Setenv("MIGRATE_ON_START", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Port != "6010" {
			t.Errorf("expected port 6010, got %s", cfg.Port)
		}
		if cfg.PagesDir != "src" || cfg.AssetsDir != "." {
			t.Errorf("unexpected roots: %q, %q", cfg.PagesDir, cfg.AssetsDir)
		}
		if len(cfg.KafkaBrokers) != 0 {
			t.Errorf("expected no brokers, got %v", cfg.KafkaBrokers)
		}
		if cfg.GuestUserID != 1 {
			t.Errorf("expected guest user 1, got %d", cfg.GuestUserID)
		}
		if !cfg.MigrateOnStart {
			t.Error("expected migrations on start by default")
		}
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("POSTGRES_URL", "postgres://shop@localhost/shop")
		t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
		t.Setenv("GUEST_USER_ID", "42")
		t.Setenv("MIGRATE_ON_START", "false")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
			t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
		}
		if cfg.GuestUserID != 42 {
			t.Errorf("expected guest user 42, got %d", cfg.GuestUserID)
		}
		if cfg.MigrateOnStart {
			t.Error("expected migrations disabled")
		}
	})
}

func TestLoadMailer(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("MAIL_FROM", "")

	cfg := LoadMailer()
	if cfg.SMTPHost != "" {
		t.Errorf("expected no SMTP host, got %q", cfg.SMTPHost)
	}
	if cfg.SMTPPort != 2525 {
		t.Errorf("expected SMTP port 2525, got %d", cfg.SMTPPort)
	}
	if cfg.From != "orders@storefront.local" {
		t.Errorf("unexpected sender %q", cfg.From)
	}
}

func TestLoadNotifier(t *testing.T) {
	t.Run("requires brokers", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("MAILER_URL", "http://mailer:8084")

		if _, err := LoadNotifier(); !errors.Is(err, ErrMissingKafkaBrokers) {
			t.Errorf("expected ErrMissingKafkaBrokers, got %v", err)
		}
	})

	t.Run("requires mailer url", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "kafka:9092")
		t.Setenv("MAILER_URL", "")

		if _, err := LoadNotifier(); !errors.Is(err, ErrMissingMailerURL) {
			t.Errorf("expected ErrMissingMailerURL, got %v", err)
		}
	})

	t.Run("defaults topic", func(t *testing.T) {
		t.Setenv("KAFKA_BROKERS", "kafka:9092")
		t.Setenv("MAILER_URL", "http://mailer:8084")
		t.Setenv("ORDER_TOPIC", "")

		cfg, err := LoadNotifier()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.OrderTopic != "order.placed" {
			t.Errorf("unexpected topic %q", cfg.OrderTopic)
		}
	})
}

func TestLoadCart(t *testing.T) {
	t.Setenv("CART_FILE", "/tmp/cart-test.json")
	t.Setenv("STOREFRONT_URL", "")
	t.Setenv("REDIS_ADDR", "")

	cfg := LoadCart()
	if cfg.File != "/tmp/cart-test.json" {
		t.Errorf("unexpected cart file %q", cfg.File)
	}
	if cfg.StorefrontURL != "http://localhost:6010" {
		t.Errorf("unexpected storefront url %q", cfg.StorefrontURL)
	}
	if cfg.Owner != "guest" {
		t.Errorf("unexpected owner %q", cfg.Owner)
	}
}
