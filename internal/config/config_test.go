package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const baseYAML = `app:
  name: "Turnero"
  port: 8080
database:
  driver: "sqlite"
  filename: "data/test.db"
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(baseYAML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.App.Environment != "development" {
		t.Fatalf("environment = %q, want development", cfg.App.Environment)
	}
	if cfg.Booking.Timezone != defaultTimezone {
		t.Fatalf("timezone = %q, want %q", cfg.Booking.Timezone, defaultTimezone)
	}
	if cfg.Booking.PhoneRegion != "AR" {
		t.Fatalf("phone region = %q, want AR", cfg.Booking.PhoneRegion)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("shutdown timeout = %s, want 30s", cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "missing_name", mutate: func(c *Config) { c.App.Name = "" }, wantErr: "app name"},
		{name: "missing_port", mutate: func(c *Config) { c.App.Port = 0 }, wantErr: "app port"},
		{name: "bad_driver", mutate: func(c *Config) { c.Database.Driver = "postgres" }, wantErr: "unsupported database driver"},
		{name: "bad_timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }, wantErr: "booking timezone"},
		{name: "bad_region", mutate: func(c *Config) { c.Booking.PhoneRegion = "ARG" }, wantErr: "phone_region"},
		{name: "email_without_sender", mutate: func(c *Config) {
			c.Email.Enabled = true
			c.Email.Sender = ""
		}, wantErr: "email region and sender"},
		{name: "bad_cron", mutate: func(c *Config) {
			c.Reminders.Enabled = true
			c.Reminders.Cron = "every day"
		}, wantErr: "reminders cron"},
		{name: "valid_cron", mutate: func(c *Config) {
			c.Reminders.Enabled = true
			c.Reminders.Cron = "30 8 * * *"
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := Parse([]byte(baseYAML))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			cfg.Email.Region = "us-east-1"
			test.mutate(cfg)

			err = cfg.Validate()
			if test.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), test.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, test.wantErr)
			}
		})
	}
}

func TestLoadReadsSecretsFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	if err := os.WriteFile(path, []byte(baseYAML), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("APP_SECRET_KEY", "secret")
	t.Setenv("CLERK_SECRET_KEY", "sk_test")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.App.SecretKey != "secret" {
		t.Fatalf("secret key = %q", cfg.App.SecretKey)
	}
	if cfg.Clerk.SecretKey != "sk_test" {
		t.Fatalf("clerk secret key = %q", cfg.Clerk.SecretKey)
	}
}
