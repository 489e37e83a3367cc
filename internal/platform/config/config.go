package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/buchwerk/buchwerk/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	IsProduction  bool
	LogLevel      string
	MigrationsDir string

	// Document number prefixes, German convention: AN Angebot (quote),
	// AB Auftragsbestaetigung (order), RE Rechnung (invoice).
	QuoteNumberPrefix   string
	OrderNumberPrefix   string
	InvoiceNumberPrefix string

	// VAT account codes per direction and rate, e.g. "19=1776,7=1771".
	// Defaults are SKR03 codes.
	VatOutputAccounts string
	VatInputAccounts  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MIGRATIONS_DIR", "migrations")
	viper.SetDefault("QUOTE_NUMBER_PREFIX", "AN")
	viper.SetDefault("ORDER_NUMBER_PREFIX", "AB")
	viper.SetDefault("INVOICE_NUMBER_PREFIX", "RE")
	viper.SetDefault("VAT_OUTPUT_ACCOUNTS", "19=1776,7=1771")
	viper.SetDefault("VAT_INPUT_ACCOUNTS", "19=1576,7=1571")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:         viper.GetString("PGSQL_URL"),
		IsProduction:        viper.GetBool("IS_PRODUCTION"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		MigrationsDir:       viper.GetString("MIGRATIONS_DIR"),
		QuoteNumberPrefix:   viper.GetString("QUOTE_NUMBER_PREFIX"),
		OrderNumberPrefix:   viper.GetString("ORDER_NUMBER_PREFIX"),
		InvoiceNumberPrefix: viper.GetString("INVOICE_NUMBER_PREFIX"),
		VatOutputAccounts:   viper.GetString("VAT_OUTPUT_ACCOUNTS"),
		VatInputAccounts:    viper.GetString("VAT_INPUT_ACCOUNTS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	return cfg, nil
}

// VatAccountTable builds the rate-to-account lookup from the configured
// mappings. Malformed pairs are skipped; resolution then falls back to the
// account-type default at booking time.
func (c *Config) VatAccountTable() domain.VatAccountTable {
	return domain.VatAccountTable{
		domain.TaxOutput: parseRateMapping(c.VatOutputAccounts),
		domain.TaxInput:  parseRateMapping(c.VatInputAccounts),
	}
}

// NumberPrefixes maps document types to their configured number prefixes.
func (c *Config) NumberPrefixes() map[domain.DocumentType]string {
	return map[domain.DocumentType]string{
		domain.DocQuote:   c.QuoteNumberPrefix,
		domain.DocOrder:   c.OrderNumberPrefix,
		domain.DocInvoice: c.InvoiceNumberPrefix,
	}
}

func parseRateMapping(raw string) map[string]string {
	mapping := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		rate, code, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || rate == "" || code == "" {
			continue
		}
		mapping[strings.TrimSpace(rate)] = strings.TrimSpace(code)
	}
	return mapping
}
