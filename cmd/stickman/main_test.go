package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stickman.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func TestParseConfigFlagLoadsFile(t *testing.T) {
	path := writeConfig(t, "width: 320\nheight: 240\nfps: 12\n")

	cfg, uiMode, err := parseConfig([]string{"-config", path})
	require.NoError(t, err)

	assert.False(t, uiMode)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)
	assert.Equal(t, 12, cfg.FPS)
}

func TestParseConfigFlagsWinOverFile(t *testing.T) {
	path := writeConfig(t, "fps: 12\nquality: 30\n")

	cfg, _, err := parseConfig([]string{"-config", path, "-fps", "24"})
	require.NoError(t, err)

	// The explicit flag overrides the file; the untouched file value and
	// the untouched default both stand.
	assert.Equal(t, 24, cfg.FPS)
	assert.Equal(t, 30, cfg.Quality)
	assert.Equal(t, 1280, cfg.Width)
}

func TestParseConfigMissingFileKeepsDefaults(t *testing.T) {
	cfg, uiMode, err := parseConfig([]string{
		"-config", filepath.Join(t.TempDir(), "absent.yaml"), "-ui",
	})
	require.NoError(t, err)

	assert.True(t, uiMode)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 30, cfg.FPS)
}

func TestParseConfigPresetOverridesSize(t *testing.T) {
	cfg, _, err := parseConfig([]string{"-preset", "9:16"})
	require.NoError(t, err)

	assert.Equal(t, 720, cfg.Width)
	assert.Equal(t, 1280, cfg.Height)
}

func TestParseConfigRejectsInvalidSettings(t *testing.T) {
	_, _, err := parseConfig([]string{"-fps", "0"})
	assert.Error(t, err)
}
