// Package log builds the process-wide slog.Logger.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. Terminals get a colored single-line format; pipes and files get
// slog's text format.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
)

// LevelTrace sits below Debug and is used for per-datagram output.
const LevelTrace slog.Level = -8

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetupLogger builds the logger, installs it as slog's default and returns
// the files the caller must close.
func SetupLogger(logLevel, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	var handlers []slog.Handler

	if logFile == "" {
		handlers = append(handlers,
			LevelFilter{pass: func(l slog.Level) bool { return l < slog.LevelError }, h: consoleHandler(os.Stdout, level)},
			LevelFilter{pass: func(l slog.Level) bool { return l >= slog.LevelError }, h: consoleHandler(os.Stderr, slog.LevelError)},
		)
	} else {
		handlers = append(handlers, slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}))
	}

	var closeFiles []io.Closer
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		closeFiles = append(closeFiles, f)
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}))
	}

	logger := slog.New(NewMultiHandler(handlers...))
	slog.SetDefault(logger)
	return logger, closeFiles, nil
}

func consoleHandler(f *os.File, level slog.Level) slog.Handler {
	if term.IsTerminal(int(f.Fd())) {
		return &colorHandler{w: f, level: level}
	}
	return slog.NewTextHandler(f, &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel})
}

// replaceLevel prints LevelTrace as TRACE instead of DEBUG-4.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if l, ok := a.Value.Any().(slog.Level); ok {
			a.Value = slog.StringValue(levelName(l))
		}
	}
	return a
}

func levelName(l slog.Level) string {
	if l < slog.LevelDebug && l >= LevelTrace {
		return "TRACE"
	}
	return l.String()
}

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

func NewMultiHandler(hs ...slog.Handler) MultiHandler {
	return MultiHandler{hs: hs}
}

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		_ = h.Handle(ctx, r.Clone())
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes only the levels its predicate accepts.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

type colorHandler struct {
	w     io.Writer
	level slog.Leveler
	attrs []slog.Attr
}

func (h *colorHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *colorHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	buf.WriteString("\033[90m")
	buf.WriteString(r.Time.Format("15:04:05.000"))
	buf.WriteString("\033[0m ")

	var color string
	switch {
	case r.Level >= slog.LevelError:
		color = "\033[31m"
	case r.Level >= slog.LevelWarn:
		color = "\033[33m"
	case r.Level >= slog.LevelInfo:
		color = "\033[32m"
	case r.Level >= slog.LevelDebug:
		color = "\033[34m"
	default:
		color = "\033[35m"
	}
	buf.WriteString(color)
	fmt.Fprintf(&buf, "%5s", levelName(r.Level))
	buf.WriteString("\033[0m ")
	buf.WriteString(r.Message)

	write := func(a slog.Attr) bool {
		buf.WriteString(" ")
		buf.WriteString(a.Key)
		buf.WriteString("=")
		buf.WriteString(a.Value.String())
		return true
	}
	for _, a := range h.attrs {
		write(a)
	}
	r.Attrs(write)

	buf.WriteString("\n")
	_, err := io.WriteString(h.w, buf.String())
	return err
}

func (h *colorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &colorHandler{w: h.w, level: h.level, attrs: merged}
}

func (h *colorHandler) WithGroup(string) slog.Handler {
	return h
}
