package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults mirror the layout the reference workbooks ship with
const (
	DefaultTable     = "ro_items"
	DefaultDataDir   = "data"
	DefaultEnvFile   = ".env"
	DefaultHeaderRow = 1
)

// DefaultExtensions are the accepted input file types
var DefaultExtensions = []string{".xlsx", ".xls"}

// Config holds settings shared by the sync and decide commands
type Config struct {
	DatabaseURL string   `yaml:"database_url"`
	Table       string   `yaml:"table"`
	DataDir     string   `yaml:"data_dir"`
	Extensions  []string `yaml:"extensions"`
	HeaderRow   int      `yaml:"header_row"`
	LogFile     string   `yaml:"log_file"`
	Verbose     bool     `yaml:"verbose"`
}

// LoadOptions selects the optional files Load reads
type LoadOptions struct {
	// ConfigFile is a YAML file; empty skips it
	ConfigFile string
	// EnvFile is a dotenv file; a missing default .env is not an error
	EnvFile string
}

// Default returns a Config with built-in defaults
func Default() *Config {
	return &Config{
		Table:      DefaultTable,
		DataDir:    DefaultDataDir,
		Extensions: append([]string(nil), DefaultExtensions...),
		HeaderRow:  DefaultHeaderRow,
	}
}

// Load builds a Config from defaults, the YAML file, the dotenv file and
// the process environment, in increasing precedence
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	if opts.ConfigFile != "" {
		if err := cfg.loadYAML(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil {
		// Only an explicitly requested env file has to exist
		if !errors.Is(err, fs.ErrNotExist) || opts.EnvFile != "" {
			return nil, fmt.Errorf("error loading env file %s: %w", envFile, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.Table = getEnv("REORDER_TABLE", c.Table)
	c.DataDir = getEnv("REORDER_DATA_DIR", c.DataDir)
	c.LogFile = getEnv("REORDER_LOG_FILE", c.LogFile)

	if raw := os.Getenv("REORDER_EXTENSIONS"); raw != "" {
		c.Extensions = strings.Split(raw, ",")
	}
	if raw := os.Getenv("REORDER_HEADER_ROW"); raw != "" {
		row, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid REORDER_HEADER_ROW: %s", raw)
		}
		c.HeaderRow = row
	}
	if raw := os.Getenv("REORDER_VERBOSE"); raw != "" {
		verbose, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("invalid REORDER_VERBOSE: %s", raw)
		}
		c.Verbose = verbose
	}
	return nil
}

// Validate checks the settings needed to reach the store
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL not found; set it in the environment or in %s", DefaultEnvFile)
	}
	if c.Table == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if c.HeaderRow < 0 {
		return fmt.Errorf("header row cannot be negative, got %d", c.HeaderRow)
	}
	return nil
}

// getEnv gets environment variable with fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
