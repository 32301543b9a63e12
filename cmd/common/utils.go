package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ducminhle1904/bitstring-ga/pkg/config"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled console output for CLI applications
type Logger struct {
	Level      LogLevel
	ShowEmojis bool
	ShowColors bool
	SilentMode bool
	Out        io.Writer
}

// NewLogger creates a new logger with default settings writing to stdout
func NewLogger() *Logger {
	return &Logger{
		Level:      LogLevelInfo,
		ShowEmojis: true,
		ShowColors: true,
		SilentMode: false,
		Out:        os.Stdout,
	}
}

// SetSilentMode enables or disables silent mode
func (l *Logger) SetSilentMode(silent bool) {
	l.SilentMode = silent
}

// line describes how one kind of message is printed
type line struct {
	level  LogLevel
	always bool
	emoji  string
	plain  string
	gap    string
	colors text.Colors
}

var (
	infoLine    = line{level: LogLevelInfo, emoji: "ℹ️", plain: "[INFO]", gap: "  "}
	warnLine    = line{level: LogLevelWarn, emoji: "⚠️", plain: "[WARN]", gap: "  ", colors: text.Colors{text.FgYellow}}
	errorLine   = line{level: LogLevelError, always: true, emoji: "❌", plain: "[ERROR]", gap: " ", colors: text.Colors{text.FgRed}}
	successLine = line{level: LogLevelError, emoji: "✅", plain: "[SUCCESS]", gap: " ", colors: text.Colors{text.FgGreen}}
	debugLine   = line{level: LogLevelDebug, always: true, emoji: "🔍", plain: "[DEBUG]", gap: " "}
)

func (l *Logger) prefix(emoji, plain string) string {
	if l.ShowEmojis {
		return emoji
	}
	return plain
}

func (l *Logger) paint(colors text.Colors, s string) string {
	if !l.ShowColors || len(colors) == 0 {
		return s
	}
	return colors.Sprint(s)
}

// emit prints msg unless the level is filtered out or silent mode hides it
func (l *Logger) emit(kind line, format string, args ...interface{}) {
	if l.Level < kind.level || (l.SilentMode && !kind.always) {
		return
	}
	msg := l.paint(kind.colors, fmt.Sprintf(format, args...))
	fmt.Fprintf(l.Out, "%s%s%s\n", l.prefix(kind.emoji, kind.plain), kind.gap, msg)
}

// banner prints a title underlined with rule
func (l *Logger) banner(emoji, plain, title, rule string, colors text.Colors) {
	if l.SilentMode {
		return
	}
	fmt.Fprintf(l.Out, "\n%s %s\n%s\n", l.prefix(emoji, plain), l.paint(colors, title), strings.Repeat(rule, len(title)+5))
}

// Header prints an upper-cased run title
func (l *Logger) Header(title string) {
	l.banner("🧬", "***", strings.ToUpper(title), "=", text.Colors{text.Bold})
}

func (l *Logger) Section(title string) {
	l.banner("📋", "---", title, "-", nil)
}

func (l *Logger) Info(format string, args ...interface{})    { l.emit(infoLine, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})    { l.emit(warnLine, format, args...) }
func (l *Logger) Success(format string, args ...interface{}) { l.emit(successLine, format, args...) }
func (l *Logger) Debug(format string, args ...interface{})   { l.emit(debugLine, format, args...) }

// Error prints even in silent mode
func (l *Logger) Error(format string, args ...interface{}) { l.emit(errorLine, format, args...) }

// EnvLoader loads .env files and reports what it did through a Logger
type EnvLoader struct {
	logger *Logger
}

// NewEnvLoader creates a new environment loader
func NewEnvLoader(logger *Logger) *EnvLoader {
	return &EnvLoader{logger: logger}
}

// LoadEnvFile loads environment variables from a file; a missing file is only a warning
func (e *EnvLoader) LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		e.logger.Debug("Environment file %s not found, using system environment", path)
		return nil
	}

	values, err := config.ReadEnvFile(path)
	if err != nil {
		e.logger.Warn("Could not parse environment file %s: %v", path, err)
		return err
	}

	if err := config.LoadEnv(path); err != nil {
		e.logger.Warn("Could not load environment file %s: %v", path, err)
		return err
	}

	e.logger.Debug("Environment loaded from %s (%d keys)", path, len(values))
	return nil
}

// GetEnvWithDefault gets an environment variable with a default value
func (e *EnvLoader) GetEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ResolvePath adds defaultExt when missing and places bare file names under defaultDir
func ResolvePath(path, defaultDir, defaultExt string) string {
	if path == "" {
		return ""
	}

	if defaultExt != "" && !strings.HasSuffix(strings.ToLower(path), defaultExt) {
		path += defaultExt
	}

	if defaultDir != "" && !strings.ContainsAny(path, "/\\") {
		return filepath.Join(defaultDir, path)
	}

	return path
}
