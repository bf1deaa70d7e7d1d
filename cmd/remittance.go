// =============================================================================
// AXON Reconciliation Toolkit - Remittance Command
// =============================================================================
//
// The 'remittance' command breaks a remittance report out by customer using
// the AXON invoice -> customer lookup. Each configured customer gets its own
// amount column and a grand total on the trailing TOTAL row; rows whose
// invoice is unknown to AXON land on a separate sheet.
//
// COMMAND USAGE:
//   axonrecon remittance --axon axon.xlsx --remittance remit.xlsx [--out report.xlsx]
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
	remitAxonPath string
	remitPath     string
	remitOutPath  string
)

var remittanceCmd = &cobra.Command{
	Use:   "remittance",
	Short: "Break a remittance report out by AXON customer",
	Long: `The remittance command resolves each remittance row's customer through the
AXON invoice lookup (first occurrence wins on duplicate invoices) and spreads
net amounts across one column per recognized customer.

The recognized customers come from the customers list in the configuration
file; rows that resolve to no customer are labeled and collected on the
"Not Found in AXON" sheet.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemittance()
	},
}

func init() {
	rootCmd.AddCommand(remittanceCmd)

	remittanceCmd.Flags().StringVar(&remitAxonPath, "axon", "", "Path to the AXON remittance ledger (xlsx or csv)")
	remittanceCmd.Flags().StringVar(&remitPath, "remittance", "", "Path to the remittance report (xlsx or csv)")
	remittanceCmd.Flags().StringVar(&remitOutPath, "out", "", "Output workbook path (default: generated under output_dir)")
	remittanceCmd.MarkFlagRequired("axon")
	remittanceCmd.MarkFlagRequired("remittance")
}

func runRemittance() error {
	cfg, log, err := initRuntime()
	if err != nil {
		return err
	}

	axon, err := tabular.ReadFile(remitAxonPath)
	if err != nil {
		return err
	}
	rem, err := tabular.ReadFile(remitPath)
	if err != nil {
		return err
	}

	wb, err := pipeline.Remittance(axon, rem, cfg)
	if err != nil {
		return fmt.Errorf("remittance breakout failed: %w", err)
	}

	_, err = saveWorkbook(wb, remitOutPath, "remittance", cfg, log)
	return err
}
