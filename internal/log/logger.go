package log

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"imagehelper/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug atomic.Bool
	logger  = NewLogger()
)

// Field is a single structured key/value attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger with the printf-style API used across the app.
type Logger struct {
	base *logrus.Logger
	file *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput redirects a logger's output.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.base.SetOutput(w)
	}
}

// WithFile tees output to stdout and the given file (appending).
func WithFile(path string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file %s: %v\n", path, err)
			return
		}
		l.file = f
		l.base.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// WithJSON switches a logger to JSON lines.
func WithJSON() Option {
	return func(l *Logger) {
		l.base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	}
}

func NewLogger(opts ...Option) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetLevel(logrus.DebugLevel)
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		DisableColors:    true,
		QuoteEmptyFields: true,
	})

	l := &Logger{base: base}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger, releasing the previous
// logger's file.
func Configure(opts ...Option) {
	old := logger
	logger = NewLogger(opts...)
	if err := old.Close(); err != nil {
		logger.Warnf("closing previous log file: %v", err)
	}
}

// SetDebug toggles debug output for every logger.
func SetDebug(debug bool) {
	isDebug.Store(debug)
}

// Close releases the log file, if any.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.base.Infof(format, args...)
}

// Debugf logs a formatted message when debug output is on
func (l *Logger) Debugf(format string, args ...interface{}) {
	if isDebug.Load() {
		l.base.Debugf(format, args...)
	}
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.base.Warnf(format, args...)
}

// With returns an entry carrying the given fields.
func (l *Logger) With(fields ...Field) *Entry {
	return (&Entry{entry: logrus.NewEntry(l.base)}).With(fields...)
}

// Entry is a log line under construction with structured fields.
type Entry struct {
	entry *logrus.Entry
}

// With adds more fields to the entry.
func (e *Entry) With(fields ...Field) *Entry {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Entry{entry: e.entry.WithFields(data)}
}

func (e *Entry) Info(msg string) { e.entry.Info(msg) }

func (e *Entry) Warn(msg string) { e.entry.Warn(msg) }

func (e *Entry) Error(msg string) { e.entry.Error(msg) }

func (e *Entry) Debug(msg string) {
	if isDebug.Load() {
		e.entry.Debug(msg)
	}
}

// errorFields flattens an application error into log fields.
func errorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{F("error", err.Error())}

	var fileErr *errors.FileError
	if errors.As(err, &fileErr) {
		return append(fields, F("error_kind", int(fileErr.Kind())), F("path", fileErr.Path()))
	}
	var captureErr *errors.CaptureError
	if errors.As(err, &captureErr) {
		return append(fields, F("error_kind", int(captureErr.Kind())), F("region", captureErr.Region().String()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) {
		return append(fields, F("error_kind", int(configErr.Kind())), F("param", configErr.Param()))
	}
	var appErr *errors.ApplicationError
	if errors.As(err, &appErr) {
		return append(fields, F("error_kind", int(appErr.Kind())))
	}
	return fields
}

// LogWithFields starts a structured line on the package-level logger.
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError starts a line describing err, including its kind and subject.
func LogWithError(err error) *Entry {
	return logger.With(errorFields(err)...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// Info logs a formatted message
func Info(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debugf logs a formatted message
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
