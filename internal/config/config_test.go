package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_PORT", "LOG_LEVEL", "DATA_SOURCE", "DATA_DIR", "WATCH_DATA_DIR",
		"GOOGLE_SHEETS_CREDENTIALS_PATH", "GOOGLE_SHEET_DATABASE_ID",
		"MONGODB_URI", "MONGODB_DB_NAME", "REPORT_CRON_SCHEDULE", "TIMEZONE",
		"WHATSAPP_TOKEN", "WHATSAPP_PHONE_NUMBER_ID", "WHATSAPP_BASE_URL",
		"WHATSAPP_API_VERSION", "WHATSAPP_RECIPIENT_ID", "ANTHROPIC_API_KEY",
		"METRICS_ENABLED",
	} {
		// godotenv never overrides variables that are present, even when empty,
		// so the keys are unset rather than blanked.
		original, had := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, original)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, SourceCSV, cfg.Data.Source)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.True(t, cfg.Data.Watch)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "0 20 * * *", cfg.Reporting.CronSchedule)
	assert.False(t, cfg.WhatsApp.Enabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	clearEnv(t)

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nDATA_SOURCE=MongoDB\nMONGODB_URI=mongodb://localhost:27017\nWATCH_DATA_DIR=false\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, SourceMongoDB, cfg.Data.Source)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.False(t, cfg.Data.Watch)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:    ServerConfig{Port: "8080"},
			Data:      DataConfig{Source: SourceCSV, Dir: "data"},
			Reporting: ReportingConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid csv", mutate: func(c *Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.Data.Source = "ftp" }, wantErr: true},
		{name: "sheets without credentials", mutate: func(c *Config) { c.Data.Source = SourceSheets }, wantErr: true},
		{
			name: "sheets configured",
			mutate: func(c *Config) {
				c.Data.Source = SourceSheets
				c.Sheets = SheetsConfig{CredentialsPath: "creds.json", SpreadsheetID: "abc"}
			},
		},
		{name: "mongodb without uri", mutate: func(c *Config) { c.Data.Source = SourceMongoDB }, wantErr: true},
		{name: "missing cron", mutate: func(c *Config) { c.Reporting.CronSchedule = "" }, wantErr: true},
		{name: "missing port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWhatsAppEnabled(t *testing.T) {
	w := WhatsAppConfig{AccessToken: "t", PhoneNumberID: "p"}
	assert.False(t, w.Enabled())
	w.RecipientID = "r"
	assert.True(t, w.Enabled())
}
