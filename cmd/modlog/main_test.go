package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modlog")
}

func TestVersionCommand_JSON(t *testing.T) {
	out, err := execute(t, "version", "--output", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"version"`)
}

func TestConfigValidateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  name: trainer
  level: INFO
`), 0644))

	out, err := execute(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestConfigValidateCommand_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger:\n  level: verbose\n"), 0644))

	_, err := execute(t, "config", "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logger.level")
}
