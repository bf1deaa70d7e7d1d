// =============================================================================
// AXON Reconciliation Toolkit - Approved Command
// =============================================================================
//
// The 'approved' command reconciles an AXON ledger export against an
// OpenInvoice ticket export and classifies every invoice row:
//
//   Not Ready     - no usable tickets, or none present in OpenInvoice
//   Pending       - some but not all tickets present
//   Ready to Flip - every ticket present
//
// COMMAND USAGE:
//   axonrecon approved --axon axon.xlsx --openinvoice oi.csv [--out report.xlsx]
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
	approvedAxonPath string
	approvedOpenPath string
	approvedOutPath  string
)

var approvedCmd = &cobra.Command{
	Use:   "approved",
	Short: "Classify AXON invoices by OpenInvoice ticket coverage",
	Long: `The approved command reads an AXON ledger export and an OpenInvoice ticket
export, splits each invoice's ticket list, and classifies every invoice by
how many of its tickets appear in OpenInvoice.

The output workbook carries a Summary sheet with per-status counts and an
Invoice Status sheet with the classified rows in ledger order.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runApproved()
	},
}

func init() {
	rootCmd.AddCommand(approvedCmd)

	approvedCmd.Flags().StringVar(&approvedAxonPath, "axon", "", "Path to the AXON ledger export (xlsx or csv)")
	approvedCmd.Flags().StringVar(&approvedOpenPath, "openinvoice", "", "Path to the OpenInvoice export (xlsx or csv)")
	approvedCmd.Flags().StringVar(&approvedOutPath, "out", "", "Output workbook path (default: generated under output_dir)")
	approvedCmd.MarkFlagRequired("axon")
	approvedCmd.MarkFlagRequired("openinvoice")
}

func runApproved() error {
	cfg, log, err := initRuntime()
	if err != nil {
		return err
	}

	axon, err := tabular.ReadFile(approvedAxonPath)
	if err != nil {
		return err
	}
	open, err := tabular.ReadFile(approvedOpenPath)
	if err != nil {
		return err
	}

	wb, err := pipeline.Approved(axon, open, cfg)
	if err != nil {
		return fmt.Errorf("approved reconciliation failed: %w", err)
	}

	_, err = saveWorkbook(wb, approvedOutPath, "approved", cfg, log)
	return err
}
