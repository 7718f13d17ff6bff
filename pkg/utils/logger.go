package utils

import (
	"fmt"
	"log"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger writes pipeline logs to a rotating workspace log file. Process
// steps are additionally echoed to stdout so runs are followable.
type Logger struct {
	logger *log.Logger
	quiet  bool
}

var (
	globalLogger *Logger
	once         sync.Once
)

// GetLogger returns the singleton logger backed by .pomgen/workspace.log.
func GetLogger() *Logger {
	once.Do(func() {
		logFile := &lumberjack.Logger{
			Filename:   ".pomgen/workspace.log",
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		globalLogger = &Logger{
			logger: log.New(logFile, "", log.LstdFlags),
		}
	})
	return globalLogger
}

// Close flushes and closes the underlying log file.
func (l *Logger) Close() error {
	if logFile, ok := l.logger.Writer().(*lumberjack.Logger); ok {
		return logFile.Close()
	}
	return nil
}

// SetQuiet suppresses the stdout echo of process steps.
func (l *Logger) SetQuiet(quiet bool) {
	l.quiet = quiet
}

// Logf logs to the file only.
func (l *Logger) Logf(format string, args ...any) {
	l.logger.Printf(format, args...)
}

// LogProcessStep logs a user-visible pipeline step.
func (l *Logger) LogProcessStep(message string) {
	l.logger.Printf("Step: %s", message)
	if !l.quiet {
		fmt.Println(message)
	}
}

// LogError records an error without printing it; the terminal report
// owns user-facing error output.
func (l *Logger) LogError(err error) {
	if err != nil {
		l.logger.Printf("Error: %v", err)
	}
}
