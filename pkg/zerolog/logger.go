package zerolog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/haguru/mongolens/internal/interfaces"
	"github.com/rs/zerolog"
)

// Logger implements interfaces.Logger using zerolog.
type Logger struct {
	zlog zerolog.Logger
}

// NewZerologLogger initializes zerolog with standard settings.
func NewZerologLogger(serviceName string) interfaces.Logger {
	return NewZerologLoggerWithWriter(serviceName, os.Stdout)
}

// NewZerologLoggerWithWriter writes console-formatted events to out.
func NewZerologLoggerWithWriter(serviceName string, out io.Writer) interfaces.Logger {
	output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: out != os.Stdout}
	output.FormatLevel = func(i any) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}

	z := zerolog.New(output).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
	return &Logger{zlog: z}
}

// NewNopLogger discards everything. Used by tests and tools.
func NewNopLogger() interfaces.Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func (l *Logger) Info(msg string, keyvals ...interface{}) {
	l.write(l.zlog.Info(), msg, keyvals)
}

func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	l.write(l.zlog.Warn(), msg, keyvals)
}

func (l *Logger) Error(msg string, keyvals ...interface{}) {
	l.write(l.zlog.Error(), msg, keyvals)
}

func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	l.write(l.zlog.Debug(), msg, keyvals)
}

func (l *Logger) write(event *zerolog.Event, msg string, keyvals []interface{}) {
	for i := 0; i < len(keyvals)-1; i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		if err, isErr := keyvals[i+1].(error); isErr {
			event = event.AnErr(key, err)
			continue
		}
		event = event.Interface(key, keyvals[i+1])
	}
	event.Msg(msg)
}

// SetLevel sets the global log level for zerolog.
func (l *Logger) SetLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// WithContext creates a new logger with additional context.
func (l *Logger) WithContext(ctx map[string]interface{}) interfaces.Logger {
	newLogger := l.zlog.With()
	for key, value := range ctx {
		newLogger = newLogger.Interface(key, value)
	}
	return &Logger{zlog: newLogger.Logger()}
}
