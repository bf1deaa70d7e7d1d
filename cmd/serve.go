// =============================================================================
// AXON Reconciliation Toolkit - Serve Command
// =============================================================================
//
// The 'serve' command runs the HTTP upload front-end: the same operations as
// the CLI, fed by multipart file uploads and answered with workbook
// attachments.
//
// COMMAND USAGE:
//   axonrecon serve [--listen :8080]
//
// =============================================================================

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oilfieldops/axon-recon/internal/server"
)

var serveListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP upload front-end",
	Long: `The serve command starts an HTTP server exposing the reconciliation
operations as upload endpoints:

  POST /approved    parts: axon, openinvoice
  POST /compare     parts: axon, approved (optional value: key)
  POST /remittance  parts: axon, remittance

Each endpoint responds with the generated workbook as an XLSX attachment.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveListenAddr, "listen", "", "Listen address (default: config server.listen_addr)")
}

func runServe() error {
	cfg, log, err := initRuntime()
	if err != nil {
		return err
	}

	if serveListenAddr != "" {
		cfg.Server.ListenAddr = serveListenAddr
	}

	return server.New(cfg, log).ListenAndServe()
}
