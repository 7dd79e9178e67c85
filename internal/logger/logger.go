package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/egerke001/halfop/internal/printer"
	"github.com/olekukonko/tablewriter"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level string    // "debug","info","warn","error"
	JSON  bool      // JSON output for log collectors
	Color bool      // colorize console output
	Out   io.Writer // default os.Stdout
}

var (
	mu       sync.RWMutex
	zlog     *zap.SugaredLogger
	out      io.Writer = os.Stdout
	p        *printer.ColorPrinter
	curLevel = zapcore.InfoLevel
	curOpts  Options
	ready    atomic.Bool
)

// Configure sets up the global logger.
func Configure(opts Options) {
	mu.Lock()
	defer mu.Unlock()
	configureLocked(opts)
}

func configureLocked(opts Options) {
	if opts.Out != nil {
		out = opts.Out
	}
	curOpts = opts

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.CallerKey = ""
	encCfg.MessageKey = "msg"

	var enc zapcore.Encoder
	if opts.JSON {
		encCfg.TimeKey = "ts"
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(zapcore.EncoderConfig{MessageKey: "msg"})
	}

	curLevel = parseLevel(opts.Level)
	ws := zapcore.AddSync(writerAdapter{out})
	zlog = zap.New(zapcore.NewCore(enc, ws, curLevel)).Sugar()

	if opts.Color {
		p = printer.NewColorPrinter()
	} else {
		p = printer.NewPlainPrinter()
	}

	ready.Store(true)
}

// SetLevel adjusts current level at runtime ("debug","info","warn","error").
func SetLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	opts := curOpts
	opts.Level = level
	opts.Out = out
	configureLocked(opts)
}

// SetOutput replaces the logger writer (use io.Discard in tests).
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	opts := curOpts
	opts.Level = curLevel.String()
	opts.Out = w
	configureLocked(opts)
}

// UseTestMode silences logs during tests.
func UseTestMode() {
	Configure(Options{
		Level: "error",
		Out:   io.Discard,
	})
}

// Out returns the current output writer (for tables).
func Out() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return out
}

func Info(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, func(pr *printer.ColorPrinter) string { return pr.Info(msg, args...) })
}

func Success(msg string, args ...interface{}) {
	emit(zapcore.InfoLevel, func(pr *printer.ColorPrinter) string { return pr.Success(msg, args...) })
}

func Warn(msg string, args ...interface{}) {
	emit(zapcore.WarnLevel, func(pr *printer.ColorPrinter) string { return pr.Warning(msg, args...) })
}

func LogError(msg string, args ...interface{}) {
	emit(zapcore.ErrorLevel, func(pr *printer.ColorPrinter) string { return pr.Error(msg, args...) })
}

func Debug(msg string, args ...interface{}) {
	emit(zapcore.DebugLevel, func(pr *printer.ColorPrinter) string { return pr.Debug(msg, args...) })
}

// ErrorWithCause logs msg at error level and attaches err as a structured
// field so JSON output keeps the full cause.
func ErrorWithCause(err error, msg string, args ...interface{}) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	zlog.Errorw(p.Error(msg, args...), "error", fmt.Sprintf("%+v", err))
}

func CreateTable(headers []string) *tablewriter.Table {
	mu.RLock()
	defer mu.RUnlock()
	t := tablewriter.NewTable(out)
	t.Header(headers)
	return t
}

// ---- internals ----

func emit(level zapcore.Level, format func(*printer.ColorPrinter) string) {
	if !ready.Load() {
		return
	}
	mu.RLock()
	defer mu.RUnlock()
	if zlog == nil || p == nil {
		return
	}
	// Messages are preformatted; zap only routes them.
	zlog.Log(level, format(p))
}

type writerAdapter struct{ w io.Writer }

func (wa writerAdapter) Write(b []byte) (int, error) { return wa.w.Write(b) }

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
