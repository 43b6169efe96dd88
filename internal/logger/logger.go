package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Logger is a component-scoped wrapper around slog. The Err* helpers log and
// return an error in one call so call sites can write `return log.Err(...)`.
type Logger struct {
	component string
	file      string
	function  string
}

func New(component string) Logger {
	return Logger{component: component}
}

// Setup installs the process-wide slog handler. Production gets JSON output.
// An unknown level falls back to info.
func Setup(environment, level string) {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if strings.EqualFold(environment, "production") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}

func ParseLevel(level string) slog.Level {
	var parsed slog.Level
	if err := parsed.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return parsed
}

func (l Logger) File(name string) Logger {
	l.file = name
	return l
}

func (l Logger) Function(name string) Logger {
	l.function = name
	return l
}

func (l Logger) attrs(args []any) []any {
	base := []any{"component", l.component}
	if l.file != "" {
		base = append(base, "file", l.file)
	}
	if l.function != "" {
		base = append(base, "function", l.function)
	}
	return append(base, args...)
}

func (l Logger) logger() *slog.Logger {
	return slog.Default()
}

func (l Logger) Debug(msg string, args ...any) {
	l.logger().Debug(msg, l.attrs(args)...)
}

func (l Logger) Info(msg string, args ...any) {
	l.logger().Info(msg, l.attrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.logger().Warn(msg, l.attrs(args)...)
}

// Er logs err without returning anything.
func (l Logger) Er(msg string, err error, args ...any) {
	l.logger().Error(msg, l.attrs(append([]any{"error", err}, args...))...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.logger().Error(msg, l.attrs(args)...)
}

// Err logs err and returns it wrapped with msg.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs msg and returns it as a new error.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return errors.New(msg)
}

func (l Logger) ErrMsg(msg string) error {
	l.ErMsg(msg)
	return errors.New(msg)
}
