// =============================================================================
// AXON Reconciliation Toolkit - Shared Command Helpers
// =============================================================================

package cmd

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/oilfieldops/axon-recon/internal/config"
	"github.com/oilfieldops/axon-recon/internal/report"
	"github.com/oilfieldops/axon-recon/pkg/utils"
)

// saveWorkbook writes the report workbook to outPath, or to a generated
// name under the configured output directory when outPath is empty.
// Returns the path written.
func saveWorkbook(wb *report.Workbook, outPath, op string, cfg *config.Config, log zerolog.Logger) (string, error) {
	if outPath == "" {
		if err := utils.EnsureDir(cfg.OutputDir); err != nil {
			return "", err
		}
		name := utils.GenerateOutputFileName(utils.DefaultOutputFormat, map[string]string{"op": op})
		outPath = filepath.Join(cfg.OutputDir, name)
	}

	if err := wb.Save(outPath); err != nil {
		return "", err
	}

	log.Info().Str("op", op).Str("file", outPath).Msg("report written")
	return outPath, nil
}
