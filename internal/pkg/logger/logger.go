package logger

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/doeshing/pingbot/internal/domain"
	"github.com/doeshing/pingbot/internal/ports"
)

// Options selects where log lines go.
type Options struct {
	// File receives every line. It is the debug log in production.
	File io.Writer
	// Mirror optionally duplicates lines to the console.
	Mirror io.Writer
	// Color enables ANSI colour on Mirror.
	Color   bool
	Verbose bool
}

// ZeroLogger renders "[timestamp] message key=value" lines through zerolog.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a ZeroLogger.
func New(opts Options) *ZeroLogger {
	var writers []io.Writer
	if opts.File != nil {
		writers = append(writers, lineWriter(zerolog.SyncWriter(opts.File), false))
	}
	if opts.Mirror != nil {
		writers = append(writers, lineWriter(zerolog.SyncWriter(opts.Mirror), opts.Color))
	}

	var out io.Writer
	switch len(writers) {
	case 0:
		out = io.Discard
	case 1:
		out = writers[0]
	default:
		out = zerolog.MultiLevelWriter(writers...)
	}

	level := zerolog.InfoLevel
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	return &ZeroLogger{log: zerolog.New(out).Level(level).With().Timestamp().Logger()}
}

// NewNop returns a logger that discards everything.
func NewNop() *ZeroLogger {
	return &ZeroLogger{log: zerolog.Nop()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}

func lineWriter(out io.Writer, color bool) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:             out,
		NoColor:         !color,
		PartsOrder:      []string{zerolog.TimestampFieldName, zerolog.MessageFieldName},
		FormatTimestamp: formatTimestamp,
	}
}

func formatTimestamp(i interface{}) string {
	stamp, ok := i.(string)
	if !ok {
		return fmt.Sprintf("[%v]", i)
	}
	if t, err := time.Parse(zerolog.TimeFieldFormat, stamp); err == nil {
		stamp = t.Local().Format(domain.LogTimestampFormat)
	}
	return "[" + stamp + "]"
}

var _ ports.Logger = (*ZeroLogger)(nil)
