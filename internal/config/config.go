package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP server
	Port string

	// Storage
	DataBackend  string // "json" or "sqlite"
	JSONFilePath string
	SQLiteDBPath string

	// AMQP (optional event publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Static HTML report
	ReportOutput string

	// Seed demo data into an empty store
	SeedSampleData bool
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DataBackend:  getEnv("DATA_BACKEND", "json"),
		JSONFilePath: getEnv("JSON_FILE_PATH", "./data/expenses.json"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/expenses.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "expenses"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "expense_events"),

		ReportOutput: getEnv("REPORT_OUTPUT", "./expense_report.html"),

		SeedSampleData: getEnvBool("SEED_SAMPLE_DATA", true),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "json":
		if c.JSONFilePath == "" {
			errs = append(errs, "JSON file path cannot be empty when using json backend")
		} else if err := ensureDir(c.JSONFilePath); err != nil {
			errs = append(errs, err.Error())
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		} else if err := ensureDir(c.SQLiteDBPath); err != nil {
			errs = append(errs, err.Error())
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [json sqlite]", c.DataBackend))
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
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create data directory '%s': %v", dir, err)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
