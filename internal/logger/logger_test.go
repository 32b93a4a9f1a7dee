package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogKeepsConsoleLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Log("hello")
	l.WithFields(logrus.Fields{"level_index": 2, "boxes": 3}).Warn("level loaded")

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "] hello")
	assert.Contains(t, lines[1], "WARNING level loaded boxes=3 level_index=2")
	assert.Contains(t, buf.String(), "msg=hello")
	assert.Contains(t, buf.String(), "level_index=2")
}

func TestDebugOnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf)

	l.Debugf("box %d blocked", 1)
	assert.Empty(t, l.Lines())

	l.SetVerbose(true)
	l.Debugf("box %d blocked", 1)
	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "DEBUG box 1 blocked")
}

func TestLinesAreBounded(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{})
	for range maxLines + 10 {
		l.Log("x")
	}
	assert.Len(t, l.Lines(), maxLines)
}

func TestLinesReturnsCopy(t *testing.T) {
	l := NewWithWriter(&bytes.Buffer{})
	l.Log("a")
	lines := l.Lines()
	lines[0] = "changed"
	assert.NotEqual(t, "changed", l.Lines()[0])
}
