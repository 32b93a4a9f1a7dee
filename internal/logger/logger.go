package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// LogFilePath is the path to the game log file, relative to the working directory (project root when run via go run ./cmd/sokoban).
const LogFilePath = "logs/game.txt"

// maxLines bounds the in-memory history kept for the console.
const maxLines = 500

// Logger writes structured entries to the log file and keeps a short, human-readable copy of
// each entry in memory for the in-game console.
type Logger struct {
	mu    sync.Mutex
	lines []string
	log   *logrus.Logger
}

// New returns a Logger that appends to LogFilePath. If the file cannot be opened, entries go
// to stderr instead.
func New() *Logger {
	var out io.Writer = os.Stderr
	if err := os.MkdirAll(filepath.Dir(LogFilePath), 0755); err == nil {
		if f, err := os.OpenFile(LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
			out = f
		}
	}
	return NewWithWriter(out)
}

// NewWithWriter returns a Logger whose structured output goes to w.
func NewWithWriter(w io.Writer) *Logger {
	l := &Logger{lines: make([]string, 0)}
	l.log = logrus.New()
	l.log.SetOutput(w)
	l.log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	l.log.AddHook(lineHook{l})
	return l
}

// SetVerbose enables debug entries (collision traces).
func (l *Logger) SetVerbose(v bool) {
	if v {
		l.log.SetLevel(logrus.DebugLevel)
	} else {
		l.log.SetLevel(logrus.InfoLevel)
	}
}

// Log records a plain line, e.g. text typed into the console.
func (l *Logger) Log(line string) {
	l.log.Info(line)
}

// WithFields starts a structured entry.
func (l *Logger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.log.WithFields(fields)
}

// Warnf logs a warning.
func (l *Logger) Warnf(format string, args ...any) {
	l.log.Warnf(format, args...)
}

// Debugf logs a debug entry. Its signature matches physics.Options.Debugf.
func (l *Logger) Debugf(format string, args ...any) {
	l.log.Debugf(format, args...)
}

// Lines returns a copy of the lines kept for the console.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Logger) appendLine(line string) {
	l.mu.Lock()
	l.lines = append(l.lines, line)
	if len(l.lines) > maxLines {
		l.lines = slices.Delete(l.lines, 0, len(l.lines)-maxLines)
	}
	l.mu.Unlock()
}

// lineHook mirrors every entry that passes the level filter into the console history.
type lineHook struct {
	l *Logger
}

func (lineHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h lineHook) Fire(e *logrus.Entry) error {
	var b strings.Builder
	b.WriteString("[" + e.Time.Format("15:04:05") + "] ")
	if e.Level != logrus.InfoLevel {
		b.WriteString(strings.ToUpper(e.Level.String()) + " ")
	}
	b.WriteString(e.Message)
	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	h.l.appendLine(b.String())
	return nil
}
