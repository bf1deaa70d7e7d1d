// =============================================================================
// AXON Reconciliation Toolkit - File Utilities
// =============================================================================
//
// Output-file helpers shared by the CLI commands: directory creation and
// collision-free report naming. Report names are built from a placeholder
// format so deployments can keep their own conventions:
//
//   {uuid}      - a random UUID
//   {timestamp} - current timestamp (YYYYMMDD_HHMMSS)
//   {op}        - the operation name (approved, compare, remittance)
//
// =============================================================================

package utils

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultOutputFormat is the report file name format used when a command is
// not given an explicit output path.
const DefaultOutputFormat = "{op}_{timestamp}_{uuid}.xlsx"

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", path, err)
		}
	}
	return nil
}

// GenerateOutputFileName expands the placeholder format into a concrete file
// name. Unknown placeholders are left untouched.
func GenerateOutputFileName(format string, params map[string]string) string {
	name := format
	name = strings.ReplaceAll(name, "{uuid}", uuid.New().String())
	name = strings.ReplaceAll(name, "{timestamp}", time.Now().Format("20060102_150405"))
	for key, value := range params {
		name = strings.ReplaceAll(name, "{"+key+"}", value)
	}
	return name
}

// FileExists reports whether the path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
