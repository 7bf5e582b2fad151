package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	cfg := FromEnv()
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if !cfg.TaxRate.IsZero() {
		t.Fatalf("TaxRate = %s, want 0", cfg.TaxRate)
	}
	if !cfg.ValidateAddons || !cfg.StrictDayMatch {
		t.Fatalf("boolean defaults wrong: %+v", cfg)
	}
	if cfg.RequireFutureMinutes != 30 {
		t.Fatalf("RequireFutureMinutes = %d", cfg.RequireFutureMinutes)
	}
	if cfg.OrderCodePrefix != "MK" {
		t.Fatalf("OrderCodePrefix = %q", cfg.OrderCodePrefix)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("PRICING_TAX_RATE", "0.06")
	t.Setenv("PRICING_VALIDATE_ADDONS", "false")
	t.Setenv("PICKUP_REQUIRE_FUTURE_MINUTES", "45")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "5")
	t.Setenv("ORDER_CODE_PREFIX", "ZZ")

	cfg := FromEnv()
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.TaxRate.String() != "0.06" {
		t.Fatalf("TaxRate = %s", cfg.TaxRate)
	}
	if cfg.ValidateAddons {
		t.Fatal("ValidateAddons should be false")
	}
	if cfg.RequireFutureMinutes != 45 {
		t.Fatalf("RequireFutureMinutes = %d", cfg.RequireFutureMinutes)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("ShutdownTimeout = %v", cfg.ShutdownTimeout)
	}
	if cfg.OrderCodePrefix != "ZZ" {
		t.Fatalf("OrderCodePrefix = %q", cfg.OrderCodePrefix)
	}
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("PRICING_TAX_RATE", "-0.5")
	t.Setenv("PICKUP_REQUIRE_FUTURE_MINUTES", "banana")
	cfg := FromEnv()
	if !cfg.TaxRate.IsZero() {
		t.Fatalf("negative tax rate should fall back to 0, got %s", cfg.TaxRate)
	}
	if cfg.RequireFutureMinutes != 30 {
		t.Fatalf("unparsable int should fall back, got %d", cfg.RequireFutureMinutes)
	}
}

func TestLocationFallback(t *testing.T) {
	cfg := Config{Timezone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Fatal("unknown timezone should fall back to UTC")
	}
	cfg = Config{Timezone: "UTC"}
	if cfg.Location() != time.UTC {
		t.Fatal("expected UTC")
	}
}
