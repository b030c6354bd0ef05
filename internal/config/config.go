package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storefront-orders/internal/retry"
)

type Config struct {
	Port string

	SheetsBaseURL   string
	SheetID         string
	SheetRange      string
	SheetsToken     string
	SheetsTokenFile string
	SheetsTimeout   time.Duration

	BackupDriver string // sqlite или postgres
	BackupDSN    string

	KafkaBrokers []string
	IntakeTopic  string
	IntakeGroup  string
	DLQTopic     string

	ProbeURL      string
	ProbeInterval time.Duration

	Retry retry.Options

	JaegerEndpoint string
	ServiceName    string

	LogLevel  string
	LogFormat string

	RateLimitRPS   float64
	RateLimitBurst int
	// заголовки X-Forwarded-For учитываются только за доверенным прокси
	TrustProxy bool

	SessionTTL time.Duration

	HistoryTTL  time.Duration
	HistorySize int
}

func DefaultConfig() Config {
	return Config{
		Port:           "8081",
		SheetsBaseURL:  "https://sheets.googleapis.com",
		SheetRange:     "Orders!A1",
		SheetsTimeout:  15 * time.Second,
		BackupDriver:   "sqlite",
		BackupDSN:      "file:failed_orders.db",
		IntakeTopic:    "checkout_submissions",
		IntakeGroup:    "storefront_orders_group",
		DLQTopic:       "orders_dlq",
		ProbeInterval:  15 * time.Second,
		Retry:          retry.DefaultOptions(),
		ServiceName:    "storefront-orders",
		LogLevel:       "info",
		LogFormat:      "json",
		RateLimitRPS:   2,
		RateLimitBurst: 5,
		SessionTTL:     30 * time.Minute,
		HistoryTTL:     24 * time.Hour,
		HistorySize:    1000,
	}
}

// Load reads .env, then the environment, then command-line flags.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := FromEnv(os.Getenv)

	fs := flag.NewFlagSet("storefront-orders", flag.ContinueOnError)
	port := fs.String("port", cfg.Port, "HTTP port number")
	help := fs.Bool("help", false, "Show this screen")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if *help {
		fs.Usage()
		return Config{}, flag.ErrHelp
	}
	cfg.Port = *port

	return cfg, cfg.Validate()
}

// FromEnv applies environment overrides on top of DefaultConfig.
func FromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	setString(getenv, "PORT", &cfg.Port)
	setString(getenv, "SHEETS_BASE_URL", &cfg.SheetsBaseURL)
	setString(getenv, "SHEET_ID", &cfg.SheetID)
	setString(getenv, "SHEET_RANGE", &cfg.SheetRange)
	setString(getenv, "SHEETS_TOKEN", &cfg.SheetsToken)
	setString(getenv, "SHEETS_TOKEN_FILE", &cfg.SheetsTokenFile)
	setDuration(getenv, "SHEETS_TIMEOUT", &cfg.SheetsTimeout)

	setString(getenv, "BACKUP_DRIVER", &cfg.BackupDriver)
	setString(getenv, "BACKUP_DSN", &cfg.BackupDSN)

	if val := getenv("KAFKA_BROKERS"); val != "" {
		cfg.KafkaBrokers = splitList(val)
	}
	setString(getenv, "INTAKE_TOPIC", &cfg.IntakeTopic)
	setString(getenv, "INTAKE_GROUP", &cfg.IntakeGroup)
	setString(getenv, "DLQ_TOPIC", &cfg.DLQTopic)

	setString(getenv, "PROBE_URL", &cfg.ProbeURL)
	setDuration(getenv, "PROBE_INTERVAL", &cfg.ProbeInterval)

	if val := getenv("RETRY_MAX"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			cfg.Retry.MaxRetries = n
		}
	}
	setDuration(getenv, "RETRY_INITIAL_DELAY", &cfg.Retry.InitialDelay)
	setDuration(getenv, "RETRY_MAX_DELAY", &cfg.Retry.MaxDelay)
	if val := getenv("RETRY_BACKOFF_FACTOR"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Retry.BackoffFactor = f
		}
	}

	setString(getenv, "JAEGER_ENDPOINT", &cfg.JaegerEndpoint)
	setString(getenv, "SERVICE_NAME", &cfg.ServiceName)
	setString(getenv, "LOG_LEVEL", &cfg.LogLevel)
	setString(getenv, "LOG_FORMAT", &cfg.LogFormat)

	if val := getenv("RATE_LIMIT_RPS"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil && f > 0 {
			cfg.RateLimitRPS = f
		}
	}
	if val := getenv("RATE_LIMIT_BURST"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.RateLimitBurst = n
		}
	}
	if val := getenv("TRUST_PROXY"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.TrustProxy = b
		}
	}
	setDuration(getenv, "SESSION_TTL", &cfg.SessionTTL)
	setDuration(getenv, "HISTORY_TTL", &cfg.HistoryTTL)
	if val := getenv("HISTORY_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.HistorySize = n
		}
	}

	// URL проверки сети по умолчанию - сам сервис таблиц
	if cfg.ProbeURL == "" {
		cfg.ProbeURL = cfg.SheetsBaseURL
	}
	return cfg
}

func (c Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port number '%s': must be a number", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port number %d is out of range: must be between 1 and 65535", port)
	}
	if c.SheetID == "" {
		return errors.New("SHEET_ID is not set")
	}
	switch c.BackupDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unknown backup driver %q", c.BackupDriver)
	}
	if c.Retry.BackoffFactor <= 0 {
		return fmt.Errorf("backoff factor must be positive, got %v", c.Retry.BackoffFactor)
	}
	return nil
}

func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func setString(getenv func(string) string, key string, dst *string) {
	if val := getenv(key); val != "" {
		*dst = val
	}
}

func setDuration(getenv func(string) string, key string, dst *time.Duration) {
	if val := getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			*dst = d
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
