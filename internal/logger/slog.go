package logger

import (
	"io"
	"log/slog"
)

// New returns a JSON slog logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewText returns a human-readable logger for interactive runs.
func NewText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Native adapts a logger for native code that can only hand over a level
// name and a message.
type Native struct {
	logger *slog.Logger
}

func NewNative(l *slog.Logger) *Native {
	return &Native{logger: l.With("source", "native")}
}

func (n *Native) Log(level string, message string) {
	switch level {
	case "debug", "verbose":
		n.logger.Debug(message)
	case "warn", "warning":
		n.logger.Warn(message)
	case "error":
		n.logger.Error(message)
	default:
		n.logger.Info(message)
	}
}
