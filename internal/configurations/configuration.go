package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/zdziszkee/bank-directory/internal/compatibility"
	"github.com/zdziszkee/bank-directory/internal/models"
)

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

type Config struct {
	AppName string `koanf:"app_name"`
	Log     struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
	Server struct {
		Address         string        `koanf:"address"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"server"`
	Data struct {
		DirectoryFile    string `koanf:"directory_file"`
		AffiliationsFile string `koanf:"affiliations_file"`
	} `koanf:"data"`
	Payment struct {
		Products                 []models.Product `koanf:"products"`
		ExtraIdentifierCountries []string         `koanf:"extra_identifier_countries"`
		DefaultCountries         []string         `koanf:"default_countries"`
	} `koanf:"payment"`
}

// DefaultConfig returns the default configuration for bank-directory.
// Payment products are left empty and filled with the SEPA defaults on load.
func DefaultConfig() *Config {
	cfg := &Config{AppName: "bank-directory"}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Server.Address = ":8080"
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Data.DirectoryFile = "/app/directory.json"
	cfg.Payment.ExtraIdentifierCountries = []string{"ES"}
	return cfg
}

// Load loads the configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	var k = koanf.New(".")

	// Load default values.
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("error loading default config: %w", err)
	}

	// Load from config file if specified.
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading TOML config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error checking config file: %w", err)
		}
	} else {
		commonPaths := []string{
			"./config.toml",
			"./config/config.toml",
			"/etc/bank-directory/config.toml",
		}
		for _, path := range commonPaths {
			if _, err := os.Stat(path); err == nil {
				if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
					return nil, fmt.Errorf("error loading TOML config file from %s: %w", path, err)
				}
				break
			}
		}
	}

	// APP_PAYMENT__DEFAULT_COUNTRIES becomes payment.default_countries.
	callback := func(s string) string {
		s = strings.TrimPrefix(s, "APP_")
		parts := strings.Split(s, "__")
		for i, part := range parts {
			parts[i] = strings.ToLower(part)
		}
		return strings.Join(parts, ".")
	}
	if err := k.Load(env.Provider("APP_", ".", callback), nil); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if len(config.Payment.Products) == 0 {
		config.Payment.Products = compatibility.DefaultProducts()
	}
	config.Payment.ExtraIdentifierCountries = normalizeCountries(config.Payment.ExtraIdentifierCountries)
	config.Payment.DefaultCountries = normalizeCountries(config.Payment.DefaultCountries)

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

// Matrix returns the compatibility matrix of the configured payment products
func (c *Config) Matrix() compatibility.Matrix {
	return compatibility.NewMatrix(c.Payment.Products...)
}

// validateConfig checks required fields.
func validateConfig(config *Config) error {
	if config.Log.Level == "" {
		return errors.New("log level cannot be empty")
	}
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}
	if !validLogLevels[strings.ToLower(config.Log.Level)] {
		return errors.New("invalid log level: must be one of debug, info, warn, error, fatal")
	}
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(config.Log.Format)] {
		return errors.New("invalid log format: must be text or json")
	}

	if config.Server.Address == "" {
		return errors.New("server address cannot be empty")
	}
	if config.Server.ShutdownTimeout < 0 {
		return errors.New("server shutdown_timeout cannot be negative")
	}

	if config.Data.DirectoryFile == "" {
		return errors.New("data.directory_file cannot be empty")
	}

	for _, p := range config.Payment.Products {
		if strings.TrimSpace(p.Code) == "" {
			return errors.New("payment product code cannot be empty")
		}
	}
	for _, c := range config.Payment.ExtraIdentifierCountries {
		if !countryCodePattern.MatchString(c) {
			return fmt.Errorf("invalid country code in payment.extra_identifier_countries: '%s'", c)
		}
	}
	for _, c := range config.Payment.DefaultCountries {
		if !countryCodePattern.MatchString(c) {
			return fmt.Errorf("invalid country code in payment.default_countries: '%s'", c)
		}
	}

	return nil
}

func normalizeCountries(countries []string) []string {
	normalized := make([]string, 0, len(countries))
	for _, c := range countries {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			normalized = append(normalized, c)
		}
	}
	return normalized
}
