// Package config loads saipos-normalize settings from defaults, an optional
// YAML file, a .env file and SAIPOS_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/ukaji3/saipos-normalize-go/pkg/normalize"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/annotator"
	"github.com/ukaji3/saipos-normalize-go/pkg/normalize/parser"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "SAIPOS"

// DotEnvFile is loaded from the working directory when present.
// Variables already set in the environment win over the file.
var DotEnvFile = ".env"

// Config represents the complete application configuration
type Config struct {
	Sheet       string        `yaml:"sheet" envconfig:"SHEET"`
	HeaderRows  int           `yaml:"header_rows" envconfig:"HEADER_ROWS"`
	OutputDir   string        `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
	WriteHeader bool          `yaml:"write_header" envconfig:"WRITE_HEADER"`
	CSV         CSVConfig     `yaml:"csv" envconfig:"CSV"`
	Logging     LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
}

// CSVConfig contains settings for CSV inputs
type CSVConfig struct {
	Delimiter string `yaml:"delimiter" envconfig:"DELIMITER"`
	Encoding  string `yaml:"encoding" envconfig:"ENCODING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL"`
	Format string `yaml:"format" envconfig:"FORMAT"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		HeaderRows: annotator.DefaultHeaderRows,
		OutputDir:  ".",
		CSV: CSVConfig{
			Delimiter: ",",
			Encoding:  "utf-8",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load builds the configuration. configFile may be empty.
func Load(configFile string) (*Config, error) {
	cfg := Defaults()

	if configFile != "" {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays a YAML file onto cfg.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks field values.
func (c *Config) Validate() error {
	if c.HeaderRows < 0 {
		return fmt.Errorf("header_rows must not be negative, got %d", c.HeaderRows)
	}
	if utf8.RuneCountInString(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	if !isSupportedEncoding(c.CSV.Encoding) {
		return fmt.Errorf("unsupported csv encoding %q (must be one of %s)",
			c.CSV.Encoding, strings.Join(parser.SupportedEncodings, ", "))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (must be text or json)", c.Logging.Format)
	}
	return nil
}

func isSupportedEncoding(name string) bool {
	for _, enc := range parser.SupportedEncodings {
		if strings.EqualFold(enc, name) {
			return true
		}
	}
	return false
}

// Options converts the configuration to normalization options.
func (c *Config) Options() normalize.Options {
	delimiter, _ := utf8.DecodeRuneInString(c.CSV.Delimiter)
	return normalize.Options{
		Sheet:       c.Sheet,
		HeaderRows:  c.HeaderRows,
		OutputDir:   c.OutputDir,
		WriteHeader: c.WriteHeader,
		CSV: parser.CSVOptions{
			Delimiter: delimiter,
			Encoding:  c.CSV.Encoding,
		},
	}
}
