package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"axiapac.com/timetracker/infrastructure/devops"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port             string        `yaml:"port"`
	DBDriver         string        `yaml:"dbDriver"`
	DSN              string        `yaml:"dsn"`
	DBParameter      string        `yaml:"dbParameter"`
	DBName           string        `yaml:"dbName"`
	DBMaxConnections int           `yaml:"dbMaxConnections"`
	DBLogLevel       string        `yaml:"dbLogLevel"`
	LogLevel         string        `yaml:"logLevel"`
	TimeZone         string        `yaml:"timezone"`
	LockTimeout      time.Duration `yaml:"lockTimeout"`
	SigningSecret    string        `yaml:"-"`
	SlackToken       string        `yaml:"-"`
	SlackInfo        string        `yaml:"slackInfoChannel"`
	SlackError       string        `yaml:"slackErrorChannel"`
	ExportBucket     string        `yaml:"exportBucket"`
	ImportBucket     string        `yaml:"importBucket"`
	OTLPEndpoint     string        `yaml:"otlpEndpoint"`
	OTLPInsecure     bool          `yaml:"otlpInsecure"`
}

func defaults() Config {
	return Config{
		Port:             "8080",
		DBDriver:         "mysql",
		DBMaxConnections: 10,
		DBLogLevel:       "warn",
		LogLevel:         "info",
		TimeZone:         "Australia/Brisbane",
		LockTimeout:      5 * time.Second,
	}
}

// Load reads a local .env if there is one, then CONFIG_FILE, then the
// environment. Later sources win.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Port = readString("PORT", cfg.Port)
	cfg.DBDriver = readString("DB_DRIVER", cfg.DBDriver)
	cfg.DSN = readString("DSN", cfg.DSN)
	cfg.DBParameter = readString("DB_SSM_PARAMETER", cfg.DBParameter)
	cfg.DBName = readString("DB_NAME", cfg.DBName)
	cfg.DBMaxConnections = readInt("DB_MAX_CONNECTIONS", cfg.DBMaxConnections)
	cfg.DBLogLevel = readString("DB_LOG_LEVEL", cfg.DBLogLevel)
	cfg.LogLevel = readString("LOG_LEVEL", cfg.LogLevel)
	cfg.TimeZone = readString("TIMEZONE", cfg.TimeZone)
	cfg.LockTimeout = readDuration("LOCK_TIMEOUT", cfg.LockTimeout)
	cfg.SigningSecret = readString("SIGNING_SECRET", cfg.SigningSecret)
	cfg.SlackToken = readString("SLACK_BOT_TOKEN", cfg.SlackToken)
	cfg.SlackInfo = readString("SLACK_INFO_CHANNEL", cfg.SlackInfo)
	cfg.SlackError = readString("SLACK_ERROR_CHANNEL", cfg.SlackError)
	cfg.ExportBucket = readString("EXPORT_BUCKET", cfg.ExportBucket)
	cfg.ImportBucket = readString("IMPORT_BUCKET", cfg.ImportBucket)
	cfg.OTLPEndpoint = readString("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.OTLPEndpoint)
	cfg.OTLPInsecure = readBool("OTEL_EXPORTER_OTLP_INSECURE", cfg.OTLPInsecure)

	return cfg, nil
}

// ResolveDSN returns DSN, or builds one from the SSM database list when only
// a parameter name is configured.
func (c Config) ResolveDSN(ctx context.Context) (string, error) {
	if c.DSN != "" {
		return c.DSN, nil
	}
	if c.DBParameter == "" {
		return "", fmt.Errorf("neither DSN nor DB_SSM_PARAMETER is set")
	}

	entries, err := devops.LoadDBConfig(ctx, c.DBParameter)
	if err != nil {
		return "", fmt.Errorf("failed to load database parameter: %w", err)
	}
	entry, err := devops.FindDB(entries, c.DBName)
	if err != nil {
		return "", err
	}
	return entry.DSN(c.DBDriver)
}

func (c Config) Logger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func readString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func readInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func readBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

// readDuration accepts "5s" style values or a bare number of seconds.
func readDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
