package printer

import (
	"github.com/fatih/color"
)

// ColorPrinter formats messages with one color per severity.
type ColorPrinter struct {
	Success func(format string, a ...interface{}) string
	Error   func(format string, a ...interface{}) string
	Warning func(format string, a ...interface{}) string
	Info    func(format string, a ...interface{}) string
	Debug   func(format string, a ...interface{}) string
	Accent  func(format string, a ...interface{}) string
}

func NewColorPrinter() *ColorPrinter {
	return &ColorPrinter{
		Success: color.New(color.FgGreen).SprintfFunc(),
		Error:   color.New(color.FgRed).SprintfFunc(),
		Warning: color.New(color.FgYellow).SprintfFunc(),
		Info:    color.New(color.FgBlue).SprintfFunc(),
		Debug:   color.New(color.FgCyan).SprintfFunc(),
		Accent:  color.New(color.FgMagenta, color.Bold).SprintfFunc(),
	}
}

// NewPlainPrinter returns a printer that never emits ANSI sequences,
// for sinks that write to files or remote initiators.
func NewPlainPrinter() *ColorPrinter {
	plain := func(c *color.Color) func(string, ...interface{}) string {
		c.DisableColor()
		return c.SprintfFunc()
	}
	return &ColorPrinter{
		Success: plain(color.New(color.FgGreen)),
		Error:   plain(color.New(color.FgRed)),
		Warning: plain(color.New(color.FgYellow)),
		Info:    plain(color.New(color.FgBlue)),
		Debug:   plain(color.New(color.FgCyan)),
		Accent:  plain(color.New(color.FgMagenta)),
	}
}
