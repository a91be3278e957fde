package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	color.NoColor = true

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3", "abc123")
	t.Cleanup(func() { SetVersion("dev", "unknown") })

	out, _, err := execute(t, "version", "--env-file", filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "locallibrary 1.2.3 (abc123)\n", out)
}

func TestPopulateCommand(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "catalog.db")
	envFile := filepath.Join(dir, "missing.env")

	out, _, err := execute(t, "populate", "--db", dbPath, "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Populated "+dbPath)
	assert.Contains(t, out, "books:")

	_, errOut, err := execute(t, "populate", "--db", dbPath, "--env-file", envFile)
	require.NoError(t, err)
	assert.Contains(t, errOut, "already holds books")
}
