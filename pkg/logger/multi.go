package logger

import (
	"context"
	"errors"
	"log/slog"
)

// multiHandler hands each record to every child handler that accepts its level.
type multiHandler struct {
	children []slog.Handler
}

// Multi returns a logger that writes to all of loggers, each at its own
// level. Commands use it to tee console output into a JSON log file.
func Multi(loggers ...*slog.Logger) *slog.Logger {
	children := make([]slog.Handler, 0, len(loggers))
	for _, l := range loggers {
		children = append(children, l.Handler())
	}
	return slog.New(&multiHandler{children: children})
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.children {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle writes to every enabled child, even when an earlier one fails.
func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range m.children {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (m *multiHandler) derive(fn func(slog.Handler) slog.Handler) slog.Handler {
	children := make([]slog.Handler, len(m.children))
	for i, h := range m.children {
		children[i] = fn(h)
	}
	return &multiHandler{children: children}
}
