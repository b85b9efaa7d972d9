package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Pricing  PricingConfig
	Sheets   SheetsConfig
	Notify   NotifyConfig
	Snapshot SnapshotConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for the MongoDB document store.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// PricingConfig carries the pricing settings a fresh session starts with.
type PricingConfig struct {
	DefaultProfitMargin float64
	DefaultEggQuantity  int
}

// SheetsConfig contains configuration required to export reports to Google Sheets.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ReportRange     string
}

// Enabled reports whether spreadsheet export is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// NotifyConfig holds the optional snapshot webhook target.
type NotifyConfig struct {
	WebhookURL string
}

// Enabled reports whether webhook notifications are configured.
func (c NotifyConfig) Enabled() bool {
	return c.WebhookURL != ""
}

// SnapshotConfig holds scheduler-related settings.
type SnapshotConfig struct {
	CronSchedule string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	margin, err := getenvFloat("DEFAULT_PROFIT_MARGIN", 40)
	if err != nil {
		return nil, err
	}
	quantity, err := getenvInt("DEFAULT_EGG_QUANTITY", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "eggcost"),
		},
		Pricing: PricingConfig{
			DefaultProfitMargin: margin,
			DefaultEggQuantity:  quantity,
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("REPORT_SPREADSHEET_ID"),
			ReportRange:     getenvWithDefault("REPORT_SHEET_RANGE", "Report!A:E"),
		},
		Notify: NotifyConfig{
			WebhookURL: os.Getenv("SNAPSHOT_WEBHOOK_URL"),
		},
		Snapshot: SnapshotConfig{
			CronSchedule: getenvWithDefault("SNAPSHOT_CRON_SCHEDULE", "0 20 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated and
// consistent.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Pricing.DefaultProfitMargin < 0 || c.Pricing.DefaultProfitMargin >= 100 {
		return errors.New("DEFAULT_PROFIT_MARGIN must be in [0, 100)")
	}
	if c.Pricing.DefaultEggQuantity <= 0 {
		return errors.New("DEFAULT_EGG_QUANTITY must be positive")
	}

	// Sheets export is optional but must be configured completely or not at all.
	if (c.Sheets.CredentialsPath == "") != (c.Sheets.SpreadsheetID == "") {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and REPORT_SPREADSHEET_ID must be set together")
	}

	if c.Snapshot.CronSchedule == "" {
		return errors.New("SNAPSHOT_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return parsed, nil
}

func getenvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}
