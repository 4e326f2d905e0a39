package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
service:
  id: intercom-test
accounts:
  - id: entry-1
    title: "+7 999 123-45-67"
    phone_number: "+7 (999) 123-45-67"
    api:
      base_url: https://api.example.test
      token: secret-token
security:
  jwt:
    secret: 0123456789abcdef0123456789abcdef
  admin:
    username: admin
    password: hunter2hunter2
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(cfg.Accounts) != 1 {
		t.Fatalf("expected 1 account, got %d", len(cfg.Accounts))
	}
	if cfg.Accounts[0].ID != "entry-1" {
		t.Errorf("account ID = %q, want %q", cfg.Accounts[0].ID, "entry-1")
	}

	// Defaults should survive partial config
	if cfg.MQTT.Broker.Port != 1883 {
		t.Errorf("MQTT port default = %d, want 1883", cfg.MQTT.Broker.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("logging level default = %q, want info", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{
			name:    "no accounts",
			mutate:  func(c *Config) { c.Accounts = nil },
			wantMsg: "at least one account",
		},
		{
			name: "duplicate account id",
			mutate: func(c *Config) {
				c.Accounts = append(c.Accounts, c.Accounts[0])
			},
			wantMsg: "duplicated",
		},
		{
			name: "missing base url",
			mutate: func(c *Config) {
				c.Accounts[0].API.BaseURL = ""
			},
			wantMsg: "base_url",
		},
		{
			name:    "missing jwt secret",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "" },
			wantMsg: "security.jwt.secret is required",
		},
		{
			name:    "short jwt secret",
			mutate:  func(c *Config) { c.Security.JWT.Secret = "short" },
			wantMsg: "at least 32 characters",
		},
		{
			name:    "bad qos",
			mutate:  func(c *Config) { c.MQTT.QoS = 3 },
			wantMsg: "mqtt.qos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeTempConfig(t, validYAML))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.mutate(cfg)
			err = cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INTERCOM_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("INTERCOM_JWT_SECRET", "ffffffffffffffffffffffffffffffff")

	cfg, err := Load(writeTempConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("database path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Security.JWT.Secret != "ffffffffffffffffffffffffffffffff" {
		t.Error("JWT secret env override not applied")
	}
}
