package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv(envOf(nil))

	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, "sqlite", cfg.BackupDriver)
	assert.Equal(t, 3, cfg.Retry.MaxRetries)
	assert.Equal(t, time.Second, cfg.Retry.InitialDelay)
	assert.Equal(t, cfg.SheetsBaseURL, cfg.ProbeURL)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.TrustProxy)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg := FromEnv(envOf(map[string]string{
		"PORT":                 "9090",
		"SHEET_ID":             "sheet-1",
		"BACKUP_DRIVER":        "postgres",
		"BACKUP_DSN":           "postgres://localhost/orders",
		"KAFKA_BROKERS":        "kafka-1:9092, kafka-2:9092,",
		"PROBE_URL":            "https://example.com/ping",
		"RETRY_MAX":            "5",
		"RETRY_INITIAL_DELAY":  "250ms",
		"RETRY_MAX_DELAY":      "3s",
		"RETRY_BACKOFF_FACTOR": "1.5",
		"RATE_LIMIT_RPS":       "10",
		"RATE_LIMIT_BURST":     "20",
		"HISTORY_TTL":          "1h",
		"HISTORY_SIZE":         "50",
		"LOG_FORMAT":           "text",
		"TRUST_PROXY":          "true",
		"SESSION_TTL":          "10m",
	}))

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sheet-1", cfg.SheetID)
	assert.Equal(t, "postgres", cfg.BackupDriver)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
	assert.Equal(t, "https://example.com/ping", cfg.ProbeURL)
	assert.Equal(t, 5, cfg.Retry.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Retry.InitialDelay)
	assert.Equal(t, 3*time.Second, cfg.Retry.MaxDelay)
	assert.Equal(t, 1.5, cfg.Retry.BackoffFactor)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, time.Hour, cfg.HistoryTTL)
	assert.Equal(t, 50, cfg.HistorySize)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.True(t, cfg.TrustProxy)
	assert.Equal(t, 10*time.Minute, cfg.SessionTTL)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_IgnoresMalformedValues(t *testing.T) {
	cfg := FromEnv(envOf(map[string]string{
		"RETRY_MAX":        "-2",
		"SHEETS_TIMEOUT":   "soon",
		"RATE_LIMIT_BURST": "zero",
		"HISTORY_SIZE":     "0",
		"TRUST_PROXY":      "maybe",
	}))
	def := DefaultConfig()

	assert.Equal(t, def.Retry.MaxRetries, cfg.Retry.MaxRetries)
	assert.Equal(t, def.SheetsTimeout, cfg.SheetsTimeout)
	assert.Equal(t, def.RateLimitBurst, cfg.RateLimitBurst)
	assert.Equal(t, def.HistorySize, cfg.HistorySize)
	assert.False(t, cfg.TrustProxy)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.SheetID = "sheet-1"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"port not a number", func(c *Config) { c.Port = "http" }, "invalid port number"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "out of range"},
		{"missing sheet", func(c *Config) { c.SheetID = "" }, "SHEET_ID is not set"},
		{"unknown driver", func(c *Config) { c.BackupDriver = "mysql" }, "unknown backup driver"},
		{"bad backoff", func(c *Config) { c.Retry.BackoffFactor = 0 }, "backoff factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
