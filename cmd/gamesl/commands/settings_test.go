package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
)

func TestParseSettingValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"true", true},
		{"false", false},
		{"TRUE", "TRUE"},
		{"1", int64(1)},
		{"-7", int64(-7)},
		{"1.5", 1.5},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSettingValue(tt.raw))
		})
	}
}

func TestSettingsCommands(t *testing.T) {
	env := newTestEnv(t)
	ctx := env.ctx(t)

	var buf bytes.Buffer
	require.NoError(t, runSettingsGet(ctx, config.SettingRestoreExtraBackup, &buf))
	assert.Equal(t, "true\n", buf.String())

	buf.Reset()
	require.NoError(t, runSettingsSet(ctx, config.SettingRestoreExtraBackup, "false", &buf))
	assert.Equal(t, "Set restoreExtraBackup = false\n", buf.String())
	assert.False(t, env.store.ReadPolicyFlag(config.SettingRestoreExtraBackup, true))

	buf.Reset()
	require.NoError(t, runSettingsGet(ctx, "missing", &buf))
	assert.Equal(t, "not set\n", buf.String())

	err := runSettingsSet(ctx, "", "x", &buf)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestRunSettingsShow(t *testing.T) {
	env := newTestEnv(t)

	decoders := map[string]func([]byte, any) error{
		"yaml": yaml.Unmarshal,
		"json": json.Unmarshal,
		"toml": toml.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, runSettingsShowWithWriter(env.ctx(t), format, &buf))

			var got map[string]any
			require.NoError(t, decode(buf.Bytes(), &got))
			assert.Equal(t, true, got[config.SettingRestoreExtraBackup])
			assert.Equal(t, true, got[config.SettingUseRelativeTime])
		})
	}

	err := runSettingsShowWithWriter(env.ctx(t), "xml", &bytes.Buffer{})
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}
