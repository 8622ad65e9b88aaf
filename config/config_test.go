package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlaysYAMLFields(t *testing.T) {
	dir := t.TempDir()
	contents := "stack_capacity: 512\ntrace_on_start: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(contents), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, 512, cfg.StackCapacity)
	require.True(t, cfg.TraceOnStart)
	require.False(t, cfg.DisassembleByDefault)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("not: [valid"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
}
