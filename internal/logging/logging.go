package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/plconv/internal/diag"
)

// Logger prints events at or above its level. It implements
// diag.Reporter, so the conversion core can report through it.
type Logger struct {
	mu     sync.Mutex
	out    io.Writer
	level  diag.Level
	labels map[diag.Level]string
	counts map[diag.Level]int
}

// New returns a Logger writing to w. Colors are used only when w is a
// terminal that supports them.
func New(w io.Writer, level diag.Level) *Logger {
	r := lipgloss.NewRenderer(w)
	label := func(name string, color lipgloss.TerminalColor) string {
		return r.NewStyle().Bold(true).Foreground(color).Render(name)
	}
	return &Logger{
		out:   w,
		level: level,
		labels: map[diag.Level]string{
			diag.LevelDebug: label("debug:", lipgloss.Color("8")),
			diag.LevelInfo:  label("info:", lipgloss.Color("12")),
			diag.LevelWarn:  label("warning:", lipgloss.Color("11")),
			diag.LevelError: label("error:", lipgloss.Color("9")),
		},
		counts: make(map[diag.Level]int),
	}
}

// ParseLevel parses a level name. "warning" is accepted for warn.
func ParseLevel(s string) (diag.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return diag.LevelDebug, nil
	case "info", "":
		return diag.LevelInfo, nil
	case "warn", "warning":
		return diag.LevelWarn, nil
	case "error":
		return diag.LevelError, nil
	default:
		return diag.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// LevelFromEnv returns debug when DEBUG is set to a true value, the
// level named by LOG_LEVEL when it is valid, and fallback otherwise.
func LevelFromEnv(fallback diag.Level) diag.Level {
	switch strings.ToLower(os.Getenv("DEBUG")) {
	case "1", "true", "yes", "on":
		return diag.LevelDebug
	}
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		if level, err := ParseLevel(s); err == nil {
			return level
		}
	}
	return fallback
}

// Report prints e if its level is enabled. Every event is counted,
// printed or not.
func (l *Logger) Report(e diag.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counts[e.Level]++
	if e.Level < l.level {
		return
	}
	label, ok := l.labels[e.Level]
	if !ok {
		label = e.Level.String() + ":"
	}
	fmt.Fprintf(l.out, "%s %s\n", label, e.Message)
}

// Count returns how many events at level were reported.
func (l *Logger) Count(level diag.Level) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counts[level]
}

func (l *Logger) Debugf(format string, args ...any) {
	l.Report(diag.Event{Level: diag.LevelDebug, Message: fmt.Sprintf(format, args...)})
}

func (l *Logger) Infof(format string, args ...any) {
	l.Report(diag.Event{Level: diag.LevelInfo, Message: fmt.Sprintf(format, args...)})
}

func (l *Logger) Warnf(format string, args ...any) {
	l.Report(diag.Event{Level: diag.LevelWarn, Message: fmt.Sprintf(format, args...)})
}

func (l *Logger) Errorf(format string, args ...any) {
	l.Report(diag.Event{Level: diag.LevelError, Message: fmt.Sprintf(format, args...)})
}
