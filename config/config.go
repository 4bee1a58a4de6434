package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"payoutdesk/logger"
)

type Config struct {
	Host string
	Port string

	// Database
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBPath        string
	DBAutoMigrate bool

	OperatorSecret string

	// Invoice documents
	BrandName        string
	BrandDomain      string
	BrandContact     []string
	InvoicePrefix    string
	InvoiceAllocator string
	PDFCompress      bool

	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	autoMigrate, err := strconv.ParseBool(getEnv("DB_AUTO_MIGRATE", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid value for DB_AUTO_MIGRATE: %w", err)
	}
	pdfCompress, err := strconv.ParseBool(getEnv("PDF_COMPRESS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid value for PDF_COMPRESS: %w", err)
	}

	config := &Config{
		Host:             getEnv("HOST", "127.0.0.1"),
		Port:             getEnv("PORT", "3000"),
		DBDriver:         strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", ""),
		DBPassword:       getEnv("DB_PASSWORD", ""),
		DBName:           getEnv("DB_NAME", ""),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		DBPath:           getEnv("DB_PATH", "payoutdesk.db"),
		DBAutoMigrate:    autoMigrate,
		OperatorSecret:   getEnv("OPERATOR_SECRET", ""),
		BrandName:        getEnv("BRAND_NAME", "PayoutDesk"),
		BrandDomain:      getEnv("BRAND_DOMAIN", "payoutdesk.co"),
		BrandContact:     splitList(getEnv("BRAND_CONTACT", "Bangkok, Thailand|billing@payoutdesk.co")),
		InvoicePrefix:    getEnv("INVOICE_PREFIX", "INV-"),
		InvoiceAllocator: strings.ToLower(getEnv("INVOICE_ALLOCATOR", "")),
		PDFCompress:      pdfCompress,
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:    getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:        getEnv("LOG_OUTPUT", "stdout"),
	}

	if config.InvoiceAllocator == "" {
		// sqlite has no sequences
		config.InvoiceAllocator = "sequence"
		if config.DBDriver == "sqlite" {
			config.InvoiceAllocator = "counter"
		}
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "postgres":
		if c.DBUser == "" {
			return fmt.Errorf("DB_USER is required")
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	switch c.InvoiceAllocator {
	case "sequence":
		if c.DBDriver != "postgres" {
			return fmt.Errorf("INVOICE_ALLOCATOR=sequence requires DB_DRIVER=postgres")
		}
	case "counter":
	default:
		return fmt.Errorf("unsupported INVOICE_ALLOCATOR %q", c.InvoiceAllocator)
	}

	if c.OperatorSecret == "" {
		return fmt.Errorf("OPERATOR_SECRET is required")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
