package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

type Config struct {
	// Where wallet blobs live
	DataBackend  string // "file" or "sqlite"
	DataDir      string
	SQLiteDBPath string

	// CSV exports
	ExportDir string

	// AMQP (optional; empty URL disables alert publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Where the alert worker journals consumed alerts
	AlertJournal string
}

func Load() *Config {
	dataDir := getEnv("LEDGER_DATA_DIR", "./data")
	return &Config{
		DataBackend:  getEnv("LEDGER_BACKEND", "file"),
		DataDir:      dataDir,
		SQLiteDBPath: getEnv("LEDGER_SQLITE_PATH", filepath.Join(dataDir, "finledger.db")),

		ExportDir: getEnv("LEDGER_EXPORT_DIR", dataDir),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finledger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "wallet_alerts"),

		AlertJournal: getEnv("LEDGER_ALERT_JOURNAL", filepath.Join(dataDir, "alerts.log")),
	}
}

// Validate returns an error listing everything wrong with the configuration.
func (c *Config) Validate() error {
	var errs []string

	switch c.DataBackend {
	case "file", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("invalid backend '%s': must be one of [file sqlite]", c.DataBackend))
	}

	if c.DataBackend == "file" && c.DataDir == "" {
		errs = append(errs, "data directory cannot be empty when using the file backend")
	}
	if c.DataBackend == "sqlite" && c.SQLiteDBPath == "" {
		errs = append(errs, "sqlite database path cannot be empty when using the sqlite backend")
	}
	if c.ExportDir == "" {
		errs = append(errs, "export directory cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
