package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"

	"github.com/couchcryptid/ops-report-service/internal/domain"
)

// Source kinds.
const (
	SourceSheets = "sheets"
	SourceXLSX   = "xlsx"
)

// maxOffsetDays bounds REPORT_DATE_OFFSET_DAYS in both directions.
const maxOffsetDays = 7

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	SourceKind string

	// Google Sheets source. Missing values are not a load error; the source
	// reports itself unconfigured instead.
	SpreadsheetID  string
	ClientEmail    string
	PrivateKey     string
	SheetsEndpoint string
	SheetsTimeout  time.Duration

	XLSXPath string

	MatchPolicy          domain.MatchPolicy
	ReportDateOffsetDays int

	// Report publishing.
	KafkaBrokers     []string
	KafkaReportTopic string
	PublishEnabled   bool
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	sheetsTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("SHEETS_TIMEOUT", "15s"))
	if err != nil || sheetsTimeout <= 0 {
		return nil, errors.New("invalid SHEETS_TIMEOUT")
	}

	policy, err := domain.ParseMatchPolicy(os.Getenv("MATCH_POLICY"))
	if err != nil {
		return nil, fmt.Errorf("invalid MATCH_POLICY: %w", err)
	}

	offset, err := parseOffsetDays()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		SourceKind: strings.ToLower(sharedcfg.EnvOrDefault("SOURCE_KIND", SourceSheets)),

		SpreadsheetID:  strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")),
		ClientEmail:    strings.TrimSpace(os.Getenv("GOOGLE_SHEETS_CLIENT_EMAIL")),
		PrivateKey:     expandKey(os.Getenv("GOOGLE_SHEETS_PRIVATE_KEY")),
		SheetsEndpoint: os.Getenv("GOOGLE_SHEETS_ENDPOINT"),
		SheetsTimeout:  sheetsTimeout,

		XLSXPath: os.Getenv("XLSX_PATH"),

		MatchPolicy:          policy,
		ReportDateOffsetDays: offset,

		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "operational-reports"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}
	cfg.PublishEnabled = len(cfg.KafkaBrokers) > 0
	if v := os.Getenv("REPORT_PUBLISH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.New("invalid REPORT_PUBLISH_ENABLED")
		}
		cfg.PublishEnabled = enabled
	}

	if cfg.SourceKind != SourceSheets && cfg.SourceKind != SourceXLSX {
		return nil, fmt.Errorf("unknown SOURCE_KIND %q", cfg.SourceKind)
	}
	if cfg.PublishEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("REPORT_PUBLISH_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.PublishEnabled && cfg.KafkaReportTopic == "" {
		return nil, errors.New("KAFKA_REPORT_TOPIC is required")
	}

	return cfg, nil
}

// expandKey turns literal "\n" sequences into newlines, as PEM keys are often
// stored on a single line in env files.
func expandKey(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

func parseOffsetDays() (int, error) {
	s := strings.TrimSpace(os.Getenv("REPORT_DATE_OFFSET_DAYS"))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < -maxOffsetDays || n > maxOffsetDays {
		return 0, fmt.Errorf("invalid REPORT_DATE_OFFSET_DAYS %q: want an integer in [-%d, %d]", s, maxOffsetDays, maxOffsetDays)
	}
	return n, nil
}
