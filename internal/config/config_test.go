package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	if cfg.StoreDriver != "postgres" {
		t.Errorf("StoreDriver = %q, want postgres", cfg.StoreDriver)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Errorf("JWTTTL = %v, want 24h", cfg.JWTTTL)
	}
	if diff := cmp.Diff([]string{"http://localhost:5173"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("STUDIO_CLOSED_ON_SUNDAY", "false")
	t.Setenv("CEP_RATE_BURST", "9")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("S3_BUCKET", "reports")
	t.Setenv("S3_ACCESS_KEY", "key")
	t.Setenv("S3_SECRET_KEY", "secret")

	cfg := Load()

	if cfg.StoreDriver != "memory" {
		t.Errorf("StoreDriver = %q, want memory", cfg.StoreDriver)
	}
	if cfg.ClosedOnSunday {
		t.Error("ClosedOnSunday = true, want false")
	}
	if cfg.CEPBurst != 9 {
		t.Errorf("CEPBurst = %d, want 9", cfg.CEPBurst)
	}
	if diff := cmp.Diff([]string{"https://a.example", "https://b.example"}, cfg.CORSOrigins); diff != "" {
		t.Errorf("CORSOrigins mismatch (-want +got):\n%s", diff)
	}
	if !cfg.S3Enabled() {
		t.Error("S3Enabled() = false, want true")
	}
}
