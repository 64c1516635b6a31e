package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() returned error: %v", err)
	}

	if cfg.APIKey.DefaultRateLimit != 1000 {
		t.Errorf("defaultRateLimit = %d, want 1000", cfg.APIKey.DefaultRateLimit)
	}
	if cfg.APIKey.RateWindow != time.Hour {
		t.Errorf("rateWindow = %s, want 1h", cfg.APIKey.RateWindow)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("server port = %q, want 8080", cfg.Server.Port)
	}
}

func TestLoadConfigRejectsNonPositiveRateLimit(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APIKEY_DEFAULTRATELIMIT", tt.value)
			if _, err := LoadConfig(""); err == nil {
				t.Fatal("LoadConfig() accepted a non-positive default rate limit")
			}
		})
	}
}

func TestLoadConfigRejectsNonPositiveRateWindow(t *testing.T) {
	t.Setenv("APIKEY_RATEWINDOW", "-1h")
	if _, err := LoadConfig(""); err == nil {
		t.Fatal("LoadConfig() accepted a non-positive rate window")
	}
}
