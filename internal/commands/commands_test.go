package commands

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want []string
		ok   bool
	}{
		{"level -n 2", []string{"level", "-n", "2"}, true},
		{"cmd restart", []string{"restart"}, true},
		{"  debug   -fps  ", []string{"debug", "-fps"}, true},
		{"", nil, false},
		{"cmd ", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			args, ok := Parse(tt.line)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, args)
			}
		})
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("level")
	n := fs.Int("n", 1, "level number")
	var got []int
	r.Register("level", "load a level", fs, func() error {
		got = append(got, *n)
		return nil
	})

	require.NoError(t, r.Execute([]string{"level", "-n", "3"}))
	// Flags reset to defaults between runs.
	require.NoError(t, r.Execute([]string{"level"}))
	assert.Equal(t, []int{3, 1}, got)
}

func TestExecuteErrors(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("fail", "", nil, func() error { return boom })
	fs := NewFlagSet("level")
	fs.Int("n", 1, "level number")
	r.Register("level", "", fs, func() error { return nil })

	assert.EqualError(t, r.Execute(nil), "missing subcommand")
	assert.ErrorContains(t, r.Execute([]string{"nope"}), "unknown command: nope")
	assert.ErrorIs(t, r.Execute([]string{"fail"}), boom)
	assert.ErrorContains(t, r.Execute([]string{"level", "-n", "x"}), "level:")
	assert.ErrorContains(t, r.Execute([]string{"level", "-h"}), "usage: level [-n int]")
}

func TestHelpKeepsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	fs := NewFlagSet("debug")
	fs.Bool("fps", false, "toggle fps")
	r.Register("restart", "restart the level", nil, func() error { return nil })
	r.Register("debug", "toggle overlays", fs, func() error { return nil })
	r.Register("help", "", nil, func() error { return nil })

	assert.Equal(t, []string{"restart", "debug", "help"}, r.Names())
	assert.Equal(t, []string{
		"restart: restart the level",
		"debug [-fps]: toggle overlays",
		"help",
	}, r.Help())

	r.Register("restart", "again", nil, func() error { return nil })
	assert.Equal(t, []string{"restart", "debug", "help"}, r.Names())
}
