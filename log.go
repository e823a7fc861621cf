package anvil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Log levels, ordered by severity. Cmd marks an executed command and
// Hint a notable but non-problematic condition; both sit between Info
// and Warn.
const (
	LevelDebug    = slog.LevelDebug
	LevelInfo     = slog.LevelInfo
	LevelCmd      = slog.Level(1)
	LevelHint     = slog.Level(2)
	LevelWarn     = slog.LevelWarn
	LevelError    = slog.LevelError
	LevelCritical = slog.Level(12)

	// LevelNone suppresses all output.
	LevelNone = slog.Level(16)
)

// LoggerOptions configures a Logger. The zero value logs Info and above
// to stderr without color or timestamps.
type LoggerOptions struct {
	Level      slog.Level
	Color      bool
	Timestamps bool
	Output     io.Writer // defaults to os.Stderr
	File       string    // optional additional log file sink
}

// Logger is a leveled diagnostic logger. It is an explicit object:
// construct one at program start and pass it to NewEngine — there is no
// package-level logger.
//
// Errorf terminates the process and Criticalf aborts it. The engine
// relies on this policy on its unrecoverable paths (rebuild failure,
// self-replace failure).
type Logger struct {
	sl   *slog.Logger
	file *os.File
	exit func(int)
}

// NewLogger creates a Logger from opts. If opts.File cannot be opened
// the file sink is skipped with a warning on the primary output.
func NewLogger(opts LoggerOptions) *Logger {
	w := opts.Output
	if w == nil {
		w = os.Stderr
	}

	var file *os.File
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(w, "anvil: cannot open log file %s: %v\n", opts.File, err)
		} else {
			file = f
			w = io.MultiWriter(w, f)
		}
	}

	h := &consoleHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: opts.Level,
		color: opts.Color,
		stamp: opts.Timestamps,
	}
	return &Logger{sl: slog.New(h), file: file, exit: os.Exit}
}

// Close releases the optional file sink.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func (l *Logger) logf(level slog.Level, format string, args ...any) {
	l.sl.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debugf logs at debug level.
func (l *Logger) Debugf(format string, args ...any) { l.logf(LevelDebug, format, args...) }

// Infof logs at info level.
func (l *Logger) Infof(format string, args ...any) { l.logf(LevelInfo, format, args...) }

// Cmdf logs an executed command line.
func (l *Logger) Cmdf(format string, args ...any) { l.logf(LevelCmd, format, args...) }

// Hintf logs a hint.
func (l *Logger) Hintf(format string, args ...any) { l.logf(LevelHint, format, args...) }

// Warnf logs at warning level.
func (l *Logger) Warnf(format string, args ...any) { l.logf(LevelWarn, format, args...) }

// Errorf logs at error level and terminates the process with status 1.
func (l *Logger) Errorf(format string, args ...any) {
	l.logf(LevelError, format, args...)
	l.exit(1)
}

// Criticalf logs at critical level and aborts.
func (l *Logger) Criticalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.sl.Log(context.Background(), LevelCritical, msg)
	panic("anvil: critical: " + msg)
}

const (
	colorReset    = "\x1b[0m"
	colorDebug    = "\x1b[90m"
	colorInfo     = "\x1b[32m"
	colorCmd      = "\x1b[36m"
	colorHint     = "\x1b[34m"
	colorWarn     = "\x1b[33m"
	colorError    = "\x1b[31m"
	colorCritical = "\x1b[35m"
)

// consoleHandler renders records as "[LEVEL] message", optionally
// colored and timestamped.
type consoleHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	color bool
	stamp bool
	attrs []slog.Attr
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level && level < LevelNone
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	name := levelName(r.Level)

	var b []byte
	if h.color {
		b = append(b, levelColor(r.Level)...)
	}
	b = append(b, '[')
	b = append(b, name...)
	b = append(b, ']')
	if h.color {
		b = append(b, colorReset...)
	}
	if h.stamp {
		b = append(b, ' ')
		b = r.Time.AppendFormat(b, time.DateTime)
		b = append(b, " >>>"...)
	}
	b = append(b, ' ')
	b = append(b, r.Message...)

	appendAttr := func(a slog.Attr) bool {
		b = append(b, ' ')
		b = append(b, a.Key...)
		b = append(b, '=')
		b = append(b, a.Value.String()...)
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(appendAttr)

	b = append(b, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(b)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &h2
}

func (h *consoleHandler) WithGroup(string) slog.Handler { return h }

func levelName(l slog.Level) string {
	switch {
	case l >= LevelCritical:
		return "CRITICAL"
	case l >= LevelError:
		return "ERROR"
	case l >= LevelWarn:
		return "WARN"
	case l >= LevelHint:
		return "HINT"
	case l >= LevelCmd:
		return "CMD"
	case l >= LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

func levelColor(l slog.Level) string {
	switch {
	case l >= LevelCritical:
		return colorCritical
	case l >= LevelError:
		return colorError
	case l >= LevelWarn:
		return colorWarn
	case l >= LevelHint:
		return colorHint
	case l >= LevelCmd:
		return colorCmd
	case l >= LevelInfo:
		return colorInfo
	default:
		return colorDebug
	}
}
