package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// n8n webhook
	WebhookURL     string
	WebhookTimeout time.Duration

	// Google Sheets
	GoogleSpreadsheetID string

	// Budget store
	SQLiteDBPath   string
	DefaultBudget  float64
	AlertThreshold float64

	// AMQP
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Worker
	RefreshInterval time.Duration

	// Cache
	SnapshotTTL time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend: getEnv("DATA_BACKEND", "n8n"),

		WebhookURL:     getEnv("N8N_WEBHOOK_URL", ""),
		WebhookTimeout: getEnvDuration("N8N_WEBHOOK_TIMEOUT", 10*time.Second),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),

		SQLiteDBPath:   getEnv("SQLITE_DB_PATH", "./data/compras.db"),
		DefaultBudget:  getEnvFloat("DEFAULT_MONTHLY_BUDGET", 3000),
		AlertThreshold: getEnvFloat("ALERT_THRESHOLD_PERCENT", 5),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "compras"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "price_alerts"),

		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", 5*time.Minute),

		SnapshotTTL: getEnvDuration("SNAPSHOT_CACHE_TTL", 60*time.Second),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"n8n", "sheets", "mock"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "n8n" {
		if c.WebhookURL == "" {
			errors = append(errors, "N8N_WEBHOOK_URL is required when using the n8n backend")
		} else if parsedURL, err := url.Parse(c.WebhookURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid webhook URL '%s': %v", c.WebhookURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid webhook URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
		if c.WebhookTimeout < time.Second {
			errors = append(errors, fmt.Sprintf("invalid webhook timeout %v: must be at least 1 second", c.WebhookTimeout))
		}
	}

	if c.DataBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		errors = append(errors, "GOOGLE_SPREADSHEET_ID is required when using the sheets backend")
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.DefaultBudget <= 0 {
		errors = append(errors, fmt.Sprintf("invalid default budget %.2f: must be positive", c.DefaultBudget))
	}
	if c.AlertThreshold <= 0 || c.AlertThreshold > 100 {
		errors = append(errors, fmt.Sprintf("invalid alert threshold %.2f: must be between 0 and 100", c.AlertThreshold))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.RefreshInterval < time.Second {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at least 1 second", c.RefreshInterval))
	} else if c.RefreshInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid refresh interval %v: must be at most 24 hours", c.RefreshInterval))
	}

	if c.SnapshotTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid snapshot cache TTL %v: must be at least 1 second", c.SnapshotTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
