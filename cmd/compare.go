// =============================================================================
// AXON Reconciliation Toolkit - Compare Command
// =============================================================================
//
// The 'compare' command set-compares an AXON export against an approved
// list, both keyed on a shared column (config compare.key_column, default
// "TicketNumber"). The output workbook partitions both tables into matched
// and missing sheets.
//
// COMMAND USAGE:
//   axonrecon compare --axon axon.xlsx --approved approved.csv [--key TicketNumber]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oilfieldops/axon-recon/internal/pipeline"
	"github.com/oilfieldops/axon-recon/internal/tabular"
)

var (
	compareAxonPath     string
	compareApprovedPath string
	compareKeyColumn    string
	compareOutPath      string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Set-compare two exports on a shared key column",
	Long: `The compare command loads two exports keyed on the same column, normalizes
the keys (whitespace and hyphens removed, uppercased) and partitions both
tables by key intersection.

The output workbook holds a five-metric Summary plus the four partition
sheets: Matched_AXON, Matched_Approved, Missing_in_Approved and
Missing_in_AXON.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCompare()
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareAxonPath, "axon", "", "Path to the AXON export (xlsx or csv)")
	compareCmd.Flags().StringVar(&compareApprovedPath, "approved", "", "Path to the approved list (xlsx or csv)")
	compareCmd.Flags().StringVar(&compareKeyColumn, "key", "", "Key column both sources share (default: config compare.key_column)")
	compareCmd.Flags().StringVar(&compareOutPath, "out", "", "Output workbook path (default: generated under output_dir)")
	compareCmd.MarkFlagRequired("axon")
	compareCmd.MarkFlagRequired("approved")
}

func runCompare() error {
	cfg, log, err := initRuntime()
	if err != nil {
		return err
	}

	key := compareKeyColumn
	if key == "" {
		key = cfg.Compare.KeyColumn
	}

	axon, err := tabular.ReadFile(compareAxonPath)
	if err != nil {
		return err
	}
	approved, err := tabular.ReadFile(compareApprovedPath)
	if err != nil {
		return err
	}

	wb, err := pipeline.Comparison(axon, approved, key, cfg)
	if err != nil {
		return fmt.Errorf("comparison failed: %w", err)
	}

	_, err = saveWorkbook(wb, compareOutPath, "compare", cfg, log)
	return err
}
