package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"carneiros_checker/models"
)

type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	Checker     CheckerConfig
	Sheets      SheetsConfig
	Artifacts   ArtifactsConfig
	Healthcheck HealthcheckConfig

	Listings []models.Listing
}

type CheckerConfig struct {
	BaseURL     string
	Headless    bool
	NavTimeout  time.Duration
	SettleDelay time.Duration
	MaxSessions int
}

type SheetsConfig struct {
	SpreadsheetID string
	AccessToken   string
	SheetName     string
}

type ArtifactsConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

type HealthcheckConfig struct {
	Cron string
}

const listingsFile = "config/listings.yaml"

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBPath:   getEnv("DB_PATH", "checker.db"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Checker: CheckerConfig{
			BaseURL:     getEnv("BOOKING_BASE_URL", "https://www.airbnb.com.br"),
			Headless:    getEnv("HEADLESS", "true") == "true",
			NavTimeout:  time.Duration(getEnvInt("NAV_TIMEOUT_MS", 30000)) * time.Millisecond,
			SettleDelay: time.Duration(getEnvInt("SETTLE_MS", 5000)) * time.Millisecond,
			MaxSessions: getEnvInt("MAX_SESSIONS", 2),
		},
		Sheets: SheetsConfig{
			SpreadsheetID: os.Getenv("SHEETS_SPREADSHEET_ID"),
			AccessToken:   os.Getenv("SHEETS_ACCESS_TOKEN"),
			SheetName:     getEnv("SHEETS_SHEET_NAME", "Reservas"),
		},
		Artifacts: ArtifactsConfig{
			Bucket:          os.Getenv("ARTIFACTS_BUCKET"),
			Region:          getEnv("ARTIFACTS_REGION", "us-east-1"),
			Endpoint:        os.Getenv("ARTIFACTS_ENDPOINT"),
			AccessKeyID:     os.Getenv("ARTIFACTS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("ARTIFACTS_SECRET_ACCESS_KEY"),
		},
		Healthcheck: HealthcheckConfig{
			Cron: os.Getenv("HEALTHCHECK_CRON"),
		},
	}

	if err := cfg.loadListings(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadListings reads the listing table from config/listings.yaml when
// present, otherwise uses the built-in table. The table is fixed for
// the lifetime of the process.
func (c *Config) loadListings() error {
	data, err := os.ReadFile(listingsFile)
	if err != nil {
		if os.IsNotExist(err) {
			c.Listings = defaultListings()
			return nil
		}
		return err
	}

	var file struct {
		Listings []models.Listing `yaml:"listings"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", listingsFile, err)
	}
	if len(file.Listings) == 0 {
		return fmt.Errorf("%s declares no listings", listingsFile)
	}

	seen := make(map[models.ResultKey]bool, len(file.Listings))
	for _, l := range file.Listings {
		if l.ExternalID == "" || l.ResultKey == "" {
			return fmt.Errorf("%s: listing %q needs external_id and result_key", listingsFile, l.Name)
		}
		if seen[l.ResultKey] {
			return fmt.Errorf("%s: duplicate result_key %q", listingsFile, l.ResultKey)
		}
		seen[l.ResultKey] = true
	}

	c.Listings = file.Listings
	return nil
}

func defaultListings() []models.Listing {
	return []models.Listing{
		{
			Name:       "Eco Resort Praia Dos Carneiros - Flat Colina",
			ExternalID: "614621079133481740",
			ResultKey:  models.ResultKeyColina,
		},
		{
			Name:       "Eco Resort Praia Dos Carneiros - Flat Praia",
			ExternalID: "1077091916761243151",
			ResultKey:  models.ResultKeyPraia,
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
