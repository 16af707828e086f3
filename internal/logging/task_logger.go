package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// InternalLogger is handed to background work whose output is kept beyond the process log.
type InternalLogger interface {
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Sink receives already formatted lines.
type Sink func(level, msg string)

var _ InternalLogger = (*LineLogger)(nil)

// LineLogger formats each message once and hands it to every sink.
type LineLogger struct {
	sinks []Sink
}

// NewLineLogger creates a logger writing to all sinks in order.
func NewLineLogger(sinks ...Sink) *LineLogger {
	return &LineLogger{sinks: sinks}
}

// ZerologSink writes lines to zl at the matching level.
func ZerologSink(zl zerolog.Logger) Sink {
	return func(level, msg string) {
		lvl, err := zerolog.ParseLevel(level)
		if err != nil {
			lvl = zerolog.InfoLevel
		}
		zl.WithLevel(lvl).Msg(msg)
	}
}

func (l *LineLogger) Info(format string, args ...any) {
	l.emit("info", format, args)
}

func (l *LineLogger) Warn(format string, args ...any) {
	l.emit("warn", format, args)
}

func (l *LineLogger) Error(format string, args ...any) {
	l.emit("error", format, args)
}

func (l *LineLogger) emit(level, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	for _, sink := range l.sinks {
		sink(level, msg)
	}
}
