package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

type Config struct {
	Level        LogLevel `json:"level"`
	Format       string   `json:"format"` // "json", "text"
	Output       string   `json:"output"` // "stdout", "stderr", путь к файлу
	EnableCaller bool     `json:"enable_caller"`
	Component    string   `json:"component"`
	Environment  string   `json:"environment"`
}

// Logger wraps slog.Logger with component tagging and caller info on errors.
type Logger struct {
	*slog.Logger
	config Config
	output io.Writer
}

func DefaultConfig() Config {
	return Config{
		Level:        LevelInfo,
		Format:       "json",
		Output:       "stdout",
		EnableCaller: true,
		Environment:  "development",
	}
}

func New(config Config) *Logger {
	var output io.Writer
	switch config.Output {
	case "", "stdout":
		output = os.Stdout
	case "stderr":
		output = os.Stderr
	default:
		if file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666); err == nil {
			output = file
		} else {
			output = os.Stdout
		}
	}
	return newWithWriter(config, output)
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *Logger {
	return newWithWriter(Config{Level: LevelError}, io.Discard)
}

func newWithWriter(config Config, output io.Writer) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(config.Level)}

	var handler slog.Handler
	if strings.EqualFold(config.Format, "text") {
		handler = slog.NewTextHandler(output, opts)
	} else {
		handler = slog.NewJSONHandler(output, opts)
	}

	l := slog.New(handler)
	if config.Component != "" {
		l = l.With("component", config.Component)
	}
	if config.Environment != "" {
		l = l.With("environment", config.Environment)
	}
	return &Logger{Logger: l, config: config, output: output}
}

func parseLevel(level LogLevel) slog.Level {
	switch LogLevel(strings.ToLower(string(level))) {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Logger) WithContext(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
		config: l.config,
		output: l.output,
	}
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.WithContext("component", component)
}

// Error logs at error level with the caller's file and line.
func (l *Logger) Error(msg string, args ...any) {
	l.Logger.Error(msg, l.withCaller(args)...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, l.withCaller(args)...)
	os.Exit(1)
}

func (l *Logger) withCaller(args []any) []any {
	if !l.config.EnableCaller {
		return args
	}
	// пропускаем withCaller и Error/Fatal
	if _, file, line, ok := runtime.Caller(2); ok {
		args = append(args, "caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	return args
}

func (l *Logger) Close() error {
	if closer, ok := l.output.(io.Closer); ok && l.output != os.Stdout && l.output != os.Stderr {
		return closer.Close()
	}
	return nil
}
