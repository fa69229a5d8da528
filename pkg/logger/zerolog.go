package logger

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// ZerologLogger writes leveled messages through a zerolog.Logger.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger wraps an existing zerolog logger.
func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{log: l}
}

// NewConsoleLogger creates a human readable zerolog logger writing to out.
// Debug messages are only written when debug is true.
func NewConsoleLogger(out io.Writer, debug bool) *ZerologLogger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
	return &ZerologLogger{log: l}
}

// With returns a logger that adds the key/value pair to every message.
func (z *ZerologLogger) With(key, value string) Logger {
	return &ZerologLogger{log: z.log.With().Str(key, value).Logger()}
}

func (z *ZerologLogger) Debug(format string, args ...interface{}) {
	z.log.Debug().Msg(fmt.Sprintf(format, args...))
}

func (z *ZerologLogger) Info(format string, args ...interface{}) {
	z.log.Info().Msg(fmt.Sprintf(format, args...))
}

func (z *ZerologLogger) Warning(format string, args ...interface{}) {
	z.log.Warn().Msg(fmt.Sprintf(format, args...))
}

func (z *ZerologLogger) Error(format string, args ...interface{}) {
	z.log.Error().Msg(fmt.Sprintf(format, args...))
}

// Close is a no-op; the writer belongs to the caller.
func (z *ZerologLogger) Close() error {
	return nil
}

var _ Logger = (*ZerologLogger)(nil)
