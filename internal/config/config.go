// =============================================================================
// AXON Reconciliation Toolkit - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a single YAML file.
// Everything that is a business constant rather than business logic lives
// here, most importantly the recognized customer names for the remittance
// breakout: these were once hardcoded and are now an explicit mapping of
// {customer name -> output column} so the rule can change without a code
// change.
//
// CONFIGURATION FILE (config.yaml):
//
//   log_level: info
//   output_dir: ./output
//   scan:
//     max_rows: 30
//     ticket_fallback_row: 0
//     remittance_fallback_row: 6
//   compare:
//     key_column: TicketNumber
//   customers:
//     - name: Pioneer Natural Resources
//       column: PioneerNaturalResources
//     - name: XTO Energy
//       column: XTO
//   not_found_label: NOT FOUND IN AXON
//   server:
//     listen_addr: ":8080"
//
// A missing configuration file is not an error: the defaults reproduce the
// deployed contract exactly.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// LogLevel controls logging verbosity: "debug", "info", "warn", "error".
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// OutputDir is the directory where CLI commands place generated workbooks.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// Scan controls header-row discovery.
	Scan ScanConfig `yaml:"scan"`

	// Compare configures the full table comparison operation.
	Compare CompareConfig `yaml:"compare"`

	// Customers is the ordered list of recognized customers for the
	// remittance breakout. Each entry produces one amount column in the
	// "Customer Breakdown" sheet, in this order.
	Customers []Customer `yaml:"customers"`

	// NotFoundLabel is the sentinel Customer value assigned to remittance
	// rows whose invoice is absent from the AXON lookup.
	// Default: "NOT FOUND IN AXON"
	NotFoundLabel string `yaml:"not_found_label"`

	// Server configures the HTTP upload front-end.
	Server ServerConfig `yaml:"server"`
}

// ScanConfig bounds the header-row scan and fixes the fallback indices used
// when no row within the window carries the required columns.
type ScanConfig struct {
	// MaxRows is the number of leading rows inspected for the header.
	// Default: 30
	MaxRows int `yaml:"max_rows"`

	// TicketFallbackRow is the 0-based header index assumed for the ticket
	// reconciliation sources when the scan finds nothing.
	// Default: 0
	TicketFallbackRow int `yaml:"ticket_fallback_row"`

	// RemittanceFallbackRow is the 0-based header index assumed for the AXON
	// remittance ledger when the scan finds nothing. AXON prefixes this
	// export with a fixed metadata block, so the header sits deeper.
	// Default: 6
	RemittanceFallbackRow int `yaml:"remittance_fallback_row"`
}

// CompareConfig configures the full table comparison operation.
type CompareConfig struct {
	// KeyColumn is the column both comparison sources are keyed on.
	// Fixed per deployment; overridable per run with --key.
	// Default: "TicketNumber"
	KeyColumn string `yaml:"key_column"`
}

// Customer maps a recognized customer name onto its breakout column header.
type Customer struct {
	// Name is the customer name exactly as it appears in the AXON ledger.
	Name string `yaml:"name"`

	// Column is the header of the amount column emitted for this customer.
	Column string `yaml:"column"`
}

// ServerConfig configures the HTTP upload front-end.
type ServerConfig struct {
	// ListenAddr is the address the server binds to.
	// Default: ":8080"
	ListenAddr string `yaml:"listen_addr"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file, applies defaults and
// validates the result.
//
// A nonexistent file yields the default configuration rather than an error,
// so the tool runs out of the box without a config.yaml.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

// applyDefaults fills in every unset option.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.Scan.MaxRows == 0 {
		cfg.Scan.MaxRows = 30
	}
	if cfg.Scan.RemittanceFallbackRow == 0 {
		cfg.Scan.RemittanceFallbackRow = 6
	}
	// TicketFallbackRow defaults to 0, which is also the zero value.
	if cfg.Compare.KeyColumn == "" {
		cfg.Compare.KeyColumn = "TicketNumber"
	}
	if len(cfg.Customers) == 0 {
		cfg.Customers = []Customer{
			{Name: "Pioneer Natural Resources", Column: "PioneerNaturalResources"},
			{Name: "XTO Energy", Column: "XTO"},
		}
	}
	if cfg.NotFoundLabel == "" {
		cfg.NotFoundLabel = "NOT FOUND IN AXON"
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
}

// validate rejects configurations the pipelines cannot run with.
func validate(cfg *Config) error {
	if cfg.Scan.MaxRows < 1 {
		return fmt.Errorf("scan.max_rows must be at least 1, got %d", cfg.Scan.MaxRows)
	}
	if cfg.Scan.TicketFallbackRow < 0 {
		return fmt.Errorf("scan.ticket_fallback_row must not be negative, got %d", cfg.Scan.TicketFallbackRow)
	}
	if cfg.Scan.RemittanceFallbackRow < 0 {
		return fmt.Errorf("scan.remittance_fallback_row must not be negative, got %d", cfg.Scan.RemittanceFallbackRow)
	}
	if strings.TrimSpace(cfg.Compare.KeyColumn) == "" {
		return fmt.Errorf("compare.key_column must not be empty")
	}

	seen := make(map[string]bool)
	for i, c := range cfg.Customers {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("customers[%d]: name must not be empty", i)
		}
		if strings.TrimSpace(c.Column) == "" {
			return fmt.Errorf("customers[%d] (%s): column must not be empty", i, c.Name)
		}
		if seen[c.Column] {
			return fmt.Errorf("customers[%d] (%s): duplicate column %q", i, c.Name, c.Column)
		}
		seen[c.Column] = true
	}

	return nil
}
