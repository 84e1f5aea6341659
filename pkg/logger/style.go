package logger

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Styler renders per-level console styling. It is an explicit object rather
// than process-global color state, so two loggers with different settings can
// coexist in one process.
type Styler struct {
	styles  map[Level]*color.Color
	enabled bool
}

// NewStyler creates a styler that colorizes output only when w is a terminal.
func NewStyler(w io.Writer) *Styler {
	return newStyler(isTerminal(w))
}

// NewStylerEnabled creates a styler with colorization forced on or off,
// ignoring terminal detection.
func NewStylerEnabled(enabled bool) *Styler {
	return newStyler(enabled)
}

func newStyler(enabled bool) *Styler {
	styles := map[Level]*color.Color{
		LevelDebug:   color.New(color.FgMagenta),
		LevelInfo:    color.New(color.FgBlue),
		LevelSuccess: color.New(color.FgGreen),
		LevelWarning: color.New(color.FgYellow),
		LevelError:   color.New(color.FgRed),
	}
	for _, c := range styles {
		c.EnableColor()
	}
	return &Styler{styles: styles, enabled: enabled}
}

// Colorize wraps line in the ANSI style for level. Unrecognized levels and
// disabled stylers return the line unchanged.
func (s *Styler) Colorize(level Level, line string) string {
	if !s.enabled {
		return line
	}
	c, ok := s.styles[level]
	if !ok {
		return line
	}
	return c.Sprint(line)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
