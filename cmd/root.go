// =============================================================================
// AXON Reconciliation Toolkit - Root Command
// =============================================================================
//
// Root of the Cobra CLI. All operation commands (approved, compare,
// remittance, serve) attach here.
//
// CLI STRUCTURE:
//   axonrecon
//   ├── approved    (AXON vs OpenInvoice ticket reconciliation)
//   ├── compare     (full table comparison)
//   ├── remittance  (remittance customer breakout)
//   ├── serve       (HTTP upload front-end)
//   └── version
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/oilfieldops/axon-recon/internal/config"
	"github.com/oilfieldops/axon-recon/internal/logger"
)

// cfgFile holds the path to the configuration file; overridden with --config.
var cfgFile string

// verbose forces debug logging regardless of the configured level.
var verbose bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "axonrecon",
	Short: "AXON Reconciliation Toolkit - reconcile AXON exports against external systems",
	Long: `AXON Reconciliation Toolkit reconciles invoice and ticket records across
heterogeneous spreadsheet exports and produces annotated workbook reports.

Operations:
  approved    Classify AXON invoices by OpenInvoice ticket coverage
  compare     Set-compare two exports on a shared key column
  remittance  Break a remittance report out by AXON customer
  serve       Run the HTTP upload front-end

Inputs may be XLSX workbooks or CSV files; the format is detected
automatically. Header rows buried under metadata blocks are located by
scanning for the required column names.`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. Called once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// initRuntime loads the configuration and builds the logger. Every
// subcommand starts here.
func initRuntime() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("failed to load configuration: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	return cfg, logger.New(level), nil
}
