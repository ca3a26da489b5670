// Package output provides console output, the rotating debug log,
// and GitHub Actions output emission.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Splog provides structured logging and output
type Splog struct {
	writer  io.Writer
	profile termenv.Profile
	isTTY   bool
}

// NewSplog creates a splog writing to stdout
func NewSplog() *Splog {
	return &Splog{
		writer:  os.Stdout,
		profile: termenv.ColorProfile(),
		isTTY:   isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// NewSplogWriter creates a splog writing to an arbitrary writer, uncolored
func NewSplogWriter(w io.Writer) *Splog {
	return &Splog{writer: w, profile: termenv.Ascii}
}

// Info writes an info message
func (s *Splog) Info(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, format+"\n", args...)
}

// Warn writes a warning message
func (s *Splog) Warn(format string, args ...interface{}) {
	fmt.Fprintf(s.writer, "⚠️  "+format+"\n", args...)
}

// Error writes an error message in red when the output is a terminal
func (s *Splog) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if s.isTTY {
		msg = termenv.String(msg).Foreground(s.profile.Color("1")).String()
	}
	fmt.Fprintf(s.writer, "❌ %s\n", msg)
}

// Success writes a success message in green when the output is a terminal
func (s *Splog) Success(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if s.isTTY {
		msg = termenv.String(msg).Foreground(s.profile.Color("2")).String()
	}
	fmt.Fprintf(s.writer, "✅ %s\n", msg)
}

// Debug writes a debug message to the debug log file
func (s *Splog) Debug(format string, args ...interface{}) {
	debugLogger().Printf(format, args...)
}

// Newline writes a newline
func (s *Splog) Newline() {
	fmt.Fprintln(s.writer)
}
