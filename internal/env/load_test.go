package env

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	src := `
# comment
SOKOBAN_MODE=grid
export SOKOBAN_SPEED = 4.5
QUOTED="a b"
SINGLE='c'
=novalue
broken
SOKOBAN_MODE=step
`
	vars, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"SOKOBAN_MODE":  "step",
		"SOKOBAN_SPEED": "4.5",
		"QUOTED":        "a b",
		"SINGLE":        "c",
	}, vars)
}

func TestLoadKeepsExistingVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SOKOBAN_TEST_A=file\nSOKOBAN_TEST_B=file\n"), 0o644))
	t.Setenv("SOKOBAN_TEST_A", "process")
	t.Setenv("SOKOBAN_TEST_B", "")
	require.NoError(t, os.Unsetenv("SOKOBAN_TEST_B"))

	require.NoError(t, Load(path))
	assert.Equal(t, "process", os.Getenv("SOKOBAN_TEST_A"))
	assert.Equal(t, "file", os.Getenv("SOKOBAN_TEST_B"))
}

func TestLoadMissingFile(t *testing.T) {
	assert.NoError(t, Load(filepath.Join(t.TempDir(), "nope.env")))
}
