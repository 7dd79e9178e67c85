package notifier

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/egerke001/halfop/internal/logger"
	"github.com/egerke001/halfop/internal/printer"
	"github.com/egerke001/halfop/internal/utils"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarn
	LevelError
)

type Message struct {
	Level Level
	Text  string
}

func Info(format string, a ...any) Message {
	return Message{Level: LevelInfo, Text: fmt.Sprintf(format, a...)}
}

func Success(format string, a ...any) Message {
	return Message{Level: LevelSuccess, Text: fmt.Sprintf(format, a...)}
}

func Warn(format string, a ...any) Message {
	return Message{Level: LevelWarn, Text: fmt.Sprintf(format, a...)}
}

func Error(format string, a ...any) Message {
	return Message{Level: LevelError, Text: fmt.Sprintf(format, a...)}
}

// Sink receives progress and result messages from an update check.
type Sink interface {
	Notify(Message)
}

type SinkFunc func(Message)

func (f SinkFunc) Notify(m Message) { f(m) }

// Console routes messages to the global logger.
type Console struct{}

func (Console) Notify(m Message) {
	switch m.Level {
	case LevelSuccess:
		logger.Success("%s", m.Text)
	case LevelWarn:
		logger.Warn("%s", m.Text)
	case LevelError:
		logger.LogError("%s", m.Text)
	default:
		logger.Info("%s", m.Text)
	}
}

// DebugLog routes every message to the logger at debug level, for hosts
// whose initiator already shows the messages to the user.
type DebugLog struct{}

func (DebugLog) Notify(m Message) {
	logger.Debug("%s", m.Text)
}

// Writer prints one line per message to w. It stands in for the person who
// asked for the check.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
	p  *printer.ColorPrinter
}

func NewWriter(w io.Writer, color bool) *Writer {
	p := printer.NewPlainPrinter()
	if color {
		p = printer.NewColorPrinter()
	}
	return &Writer{w: w, p: p}
}

func (s *Writer) Notify(m Message) {
	var line string
	switch m.Level {
	case LevelSuccess:
		line = s.p.Success("%s", m.Text)
	case LevelWarn:
		line = s.p.Warning("%s", m.Text)
	case LevelError:
		line = s.p.Error("%s", m.Text)
	default:
		line = s.p.Info("%s", m.Text)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintln(s.w, line)
}

// Multi fans a message out to every non-nil sink.
func Multi(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return multi(out)
}

type multi []Sink

func (m multi) Notify(msg Message) {
	for _, s := range m {
		s.Notify(msg)
	}
}

const (
	borderColor = "\033[38;5;39m"
	resetColor  = "\033[0m"
	padding     = 2
)

// DisplayStagedUpdate draws a box announcing that newVersion is staged and
// will replace current on the next restart.
func DisplayStagedUpdate(w io.Writer, current, newVersion string) {
	p := printer.NewColorPrinter()

	lines := []string{
		p.Success("Update staged!"),
		fmt.Sprintf("%s %s -> %s", p.Info("HalfOp"), p.Error(current), p.Success(newVersion)),
		p.Warning("It will be applied on the next restart."),
	}

	maxWidth := utils.GetMaxWidth(lines) + padding*2
	border := func(left, right string) string {
		return borderColor + left + strings.Repeat("─", maxWidth) + right + resetColor
	}
	side := borderColor + "│" + resetColor

	_, _ = fmt.Fprintln(w, border("╭", "╮"))
	for _, line := range lines {
		visible := len([]rune(utils.StripANSI(line)))
		left := (maxWidth - visible) / 2
		right := maxWidth - visible - left
		_, _ = fmt.Fprintf(w, "%s%s%s%s%s\n", side, strings.Repeat(" ", left), line, strings.Repeat(" ", right), side)
	}
	_, _ = fmt.Fprintln(w, border("╰", "╯"))
}
