package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend names accepted by TABULAR_BACKEND.
const (
	BackendWorkbook = "workbook"
	BackendGSheets  = "gsheets"
)

type Config struct {
	Env string

	// Tabular backend
	TabularBackend  string
	WorkbookPath    string
	SpreadsheetID   string
	CredentialsFile string

	// Quotation numbering
	QuotationPrefix string
	QuotationFloor  int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load loads configuration from the environment with sensible defaults.
// A .env file in the working directory is read first if present; variables
// already set in the process environment take precedence over it.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{}
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.TabularBackend = getEnv("TABULAR_BACKEND", BackendWorkbook)
	cfg.WorkbookPath = getEnv("WORKBOOK_PATH", "data/quotations.xlsx")
	cfg.SpreadsheetID = getEnv("GSHEETS_SPREADSHEET_ID", "")
	cfg.CredentialsFile = getEnv("GSHEETS_CREDENTIALS_FILE", "")
	cfg.QuotationPrefix = getEnv("QUOTATION_PREFIX", "QT")
	cfg.QuotationFloor = getInt("QUOTATION_FLOOR", 1000)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "json")
	return cfg
}

// Development reports whether the app runs outside production.
func (c Config) Development() bool {
	return c.Env != "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return def
		}
		return n
	}
	return def
}
