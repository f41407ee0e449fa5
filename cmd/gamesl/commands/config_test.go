package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Moushudyx/game-sl/internal/config"
)

func TestRunConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game-sl", "config.yaml")
	resetFlag(t, &configInitForce, false)

	var buf bytes.Buffer
	require.NoError(t, runConfigInit(path, &buf))
	assert.Contains(t, buf.String(), "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, config.Default().BackupDir, cfg.BackupDir)

	buf.Reset()
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o644))
	require.NoError(t, runConfigInit(path, &buf))
	assert.Contains(t, buf.String(), "already exists")
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", string(data))

	resetFlag(t, &configInitForce, true)
	buf.Reset()
	require.NoError(t, runConfigInit(path, &buf))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "backup_dir:")
}

func TestSettingsPath_Flag(t *testing.T) {
	resetFlag(t, &configFile, "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", settingsPath())
}

func TestWriteFormatted_Config(t *testing.T) {
	env := newTestEnv(t)

	var buf bytes.Buffer
	require.NoError(t, writeFormatted(&buf, "toml", env.cfg))
	assert.Contains(t, buf.String(), "backup_dir = ")
	assert.Contains(t, buf.String(), "trash_dir = ")

	buf.Reset()
	require.NoError(t, writeFormatted(&buf, "yaml", env.cfg))
	assert.Contains(t, buf.String(), "extra_backup_dir: ")
}
