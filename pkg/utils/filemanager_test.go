package utils

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOutputFileName(t *testing.T) {
	name := GenerateOutputFileName(DefaultOutputFormat, map[string]string{"op": "approved"})

	re := regexp.MustCompile(`^approved_\d{8}_\d{6}_[0-9a-f-]{36}\.xlsx$`)
	assert.Regexp(t, re, name)
}

func TestGenerateOutputFileNameLeavesUnknownPlaceholders(t *testing.T) {
	name := GenerateOutputFileName("{op}_{mystery}.xlsx", map[string]string{"op": "x"})
	assert.Equal(t, "x_{mystery}.xlsx", name)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	assert.True(t, FileExists(dir))

	// Idempotent.
	require.NoError(t, EnsureDir(dir))
}
