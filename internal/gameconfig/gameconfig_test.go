package gameconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileGivesDefault(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadKeepsDefaultsForOmittedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: step\nspeed: 3.5\nshow_colliders: true\n"), 0644))

	c, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, ModeStep, c.Mode)
	assert.Equal(t, 3.5, c.Speed)
	assert.True(t, c.ShowColliders)
	assert.Equal(t, Default().Levels, c.Levels)
	assert.Equal(t, 0.38, c.PlayerHalf)
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":   "mode: [",
		"bad mode":   "mode: diagonal\n",
		"no levels":  "levels: []\n",
		"zero speed": "speed: 0\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "game.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0644))
			c, err := LoadFrom(path)
			assert.Error(t, err)
			assert.Equal(t, Default(), c)
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "game.yaml")
	want := Default()
	want.Mode = ModeGrid
	want.Levels = []string{"a.txt"}
	want.TopDown = true

	require.NoError(t, SaveTo(path, want))
	got, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("grid")
	require.NoError(t, err)
	assert.Equal(t, ModeGrid, m)

	_, err = ParseMode("")
	assert.Error(t, err)
}

func lookupIn(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func TestApplyEnv(t *testing.T) {
	c, err := ApplyEnv(Default(), lookupIn(map[string]string{
		EnvMode:     "grid",
		EnvSpeed:    " 2.5",
		EnvLevels:   "a.txt, b.txt,,",
		EnvWinDelay: "0.25",
	}))
	require.NoError(t, err)
	assert.Equal(t, ModeGrid, c.Mode)
	assert.Equal(t, 2.5, c.Speed)
	assert.Equal(t, []string{"a.txt", "b.txt"}, c.Levels)
	assert.Equal(t, 0.25, c.WinDelay)
}

func TestApplyEnvKeepsSettingsOnBadValues(t *testing.T) {
	c, err := ApplyEnv(Default(), lookupIn(map[string]string{
		EnvMode:   "diagonal",
		EnvSpeed:  "-1",
		EnvLevels: " , ",
	}))
	require.Error(t, err)
	assert.ErrorContains(t, err, EnvMode)
	assert.ErrorContains(t, err, EnvSpeed)
	assert.ErrorContains(t, err, EnvLevels)
	assert.Equal(t, Default(), c)
}

func TestApplyEnvNothingSet(t *testing.T) {
	c, err := ApplyEnv(Default(), lookupIn(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}
