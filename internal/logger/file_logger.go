package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ducminhle1904/bitstring-ga/pkg/optimization"
)

// Logger writes a run log file and doubles as an optimization.Reporter
type Logger struct {
	runName string
	logPath string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logDir  string
	now     func() time.Time
}

// LogLevel represents different types of log entries
type LogLevel string

const (
	LogLevelInfo       LogLevel = "INFO"
	LogLevelWarning    LogLevel = "WARN"
	LogLevelError      LogLevel = "ERROR"
	LogLevelGeneration LogLevel = "GEN"
	LogLevelResult     LogLevel = "RESULT"
)

// NewLogger creates a file logger for runName under logDir, "logs" when empty
func NewLogger(logDir, runName string) (*Logger, error) {
	if logDir == "" {
		logDir = "logs"
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	now := time.Now
	filename := fmt.Sprintf("%s_%s.log", runName, now().Format("2006-01-02"))
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		runName: runName,
		logPath: logPath,
		logFile: file,
		logger:  log.New(file, "", 0),
		logDir:  logDir,
		now:     now,
	}

	l.writeSessionHeader()

	return l, nil
}

func (l *Logger) timestamp() string {
	return l.now().Format("2006-01-02 15:04:05")
}

// writeSessionHeader writes a session start header to the log
func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
🧬 EVOLUTION RUN STARTED
================================================================================
Run: %s
Started: %s
Log File: %s
================================================================================
`, l.runName, l.timestamp(), filepath.Base(l.logPath))

	l.logger.Print(header)
}

// Log writes a formatted log entry with the specified level
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", l.timestamp(), level, message))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Log(LogLevelInfo, format, args...)
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.Log(LogLevelWarning, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Log(LogLevelError, format, args...)
}

// LogError logs error with context
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// Report logs one line per evaluated generation
func (l *Logger) Report(stats optimization.GenerationStats) {
	l.Log(LogLevelGeneration, "gen=%d best=%.4f mean=%.4f median=%.4f min=%.4f distinct=%d genome=%s",
		stats.Generation, stats.BestScore, stats.MeanScore, stats.MedianScore, stats.MinScore,
		stats.Distinct, stats.BestGenome.String())
}

// LogResult logs the outcome of a finished or aborted run
func (l *Logger) LogResult(result optimization.RunResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	resultLog := fmt.Sprintf(`
[%s] [%s] ==================== RUN %s ====================
🔁 Generations: %d
🏆 Best Score: %.4f
🧬 Best Genome: %s
==============================================================`,
		l.timestamp(), LogLevelResult, result.State, result.Generations, result.Best.Score, result.Best.Genome.String())

	l.logger.Println(resultLog)
}

// Close writes the session footer and closes the log file
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}

	footer := fmt.Sprintf(`
================================================================================
🛑 EVOLUTION RUN ENDED
================================================================================
Ended: %s
================================================================================

`, l.timestamp())
	l.logger.Print(footer)

	err := l.logFile.Close()
	l.logFile = nil
	return err
}

// GetLogPath returns the current log file path
func (l *Logger) GetLogPath() string {
	return l.logPath
}
