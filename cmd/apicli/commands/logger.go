package commands

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// consoleLogger adapts zerolog to the client's Logger interface.
type consoleLogger struct {
	logger zerolog.Logger
}

func newLogger(w io.Writer, debug, noColor bool) *consoleLogger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: time.TimeOnly}

	return &consoleLogger{
		logger: zerolog.New(output).Level(level).With().Timestamp().Logger(),
	}
}

func (l *consoleLogger) Debug(msg string, fields map[string]interface{}) {
	l.logger.Debug().Fields(fields).Msg(msg)
}

func (l *consoleLogger) Info(msg string, fields map[string]interface{}) {
	l.logger.Info().Fields(fields).Msg(msg)
}

func (l *consoleLogger) Warn(msg string, fields map[string]interface{}) {
	l.logger.Warn().Fields(fields).Msg(msg)
}

func (l *consoleLogger) Error(msg string, fields map[string]interface{}) {
	l.logger.Error().Fields(fields).Msg(msg)
}
