package app

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/pacekeeper/internal/store"
)

type HeaderConfig struct {
	Name  string `toml:"name"`
	Value string `toml:"value"`
}

type Config struct {
	Server struct {
		Port       string `toml:"port" validate:"required"`
		EnableAuth bool   `toml:"enable_auth"`
	} `toml:"server"`

	// Auth guards appeal recording with per-interviewer tokens kept in redis.
	Auth struct {
		RedisURL         string `toml:"redis_url"`
		TokenHeader      string `toml:"token_header"`
		TokenKeyTemplate string `toml:"token_key_template"`
	} `toml:"auth"`

	API struct {
		RequiredHeaders []HeaderConfig `toml:"required_headers"`
	} `toml:"api"`

	Profile store.Profile `toml:"profile"`

	Export struct {
		Schedule  string `toml:"schedule"`
		OutputDir string `toml:"output_dir"`
	} `toml:"export"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return ParseConfig(path, data)
}

// ParseConfig decodes and checks a TOML config; path is only used in messages.
func ParseConfig(path string, data []byte) (*Config, error) {
	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if err := validator.New().Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	legacy, ok := config.Profile.Schemas[store.SchemaLegacy]
	if !ok || legacy.Product == "" {
		return nil, fmt.Errorf("profile %q has no product for the legacy schema slot", config.Profile.Name)
	}
	if legacy.DSN == "" {
		return nil, fmt.Errorf("profile %q has no dsn for the legacy schema slot", config.Profile.Name)
	}
	if err := checkDriver(legacy.Product, legacy.Driver); err != nil {
		return nil, fmt.Errorf("profile %q: %w", config.Profile.Name, err)
	}

	if config.Auth.TokenHeader == "" {
		config.Auth.TokenHeader = "Authorization"
	}
	if config.Auth.TokenKeyTemplate == "" {
		config.Auth.TokenKeyTemplate = "auth:interviewer:{interviewer}"
	}
	if config.Export.OutputDir == "" {
		config.Export.OutputDir = "."
	}

	logger.Debug.Printf("Loaded profile %q (legacy product %q)", config.Profile.Name, legacy.Product)

	return &config, nil
}

// checkDriver rejects a legacy slot whose driver cannot serve its product: informix data
// lives in sqlite files, postgresql needs a postgres driver.
func checkDriver(product string, driver store.DatabaseType) error {
	dialect, err := store.DialectForProduct(product)
	if err != nil {
		return err
	}
	switch dialect {
	case store.DialectLegacy:
		if driver != store.DBTypeSQLite {
			return fmt.Errorf("product %q needs driver %q, got %q", product, store.DBTypeSQLite, driver)
		}
	case store.DialectModern:
		if driver != store.DBTypePostgres && driver != store.DBTypePgx && driver != "" {
			return fmt.Errorf("product %q needs a postgres driver, got %q", product, driver)
		}
	}
	return nil
}
