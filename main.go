// =============================================================================
// AXON Reconciliation Toolkit - Main Entry Point
// =============================================================================
//
// Entry point for the axonrecon CLI. Initializes the Cobra CLI framework and
// delegates command execution to the cmd package.
//
// USAGE:
//   axonrecon approved    - Reconcile AXON invoices against OpenInvoice tickets
//   axonrecon compare     - Set-compare two exports on a shared key column
//   axonrecon remittance  - Break a remittance report out by customer
//   axonrecon serve       - Run the HTTP upload front-end
//   axonrecon version     - Display the application version
//
// ARCHITECTURE:
//   - cmd/        : CLI command definitions (Cobra)
//   - internal/   : core business logic (not for external import)
//   - pkg/        : shared utilities
//
// =============================================================================

package main

import (
	"github.com/oilfieldops/axon-recon/cmd"
)

func main() {
	cmd.Execute()
}
