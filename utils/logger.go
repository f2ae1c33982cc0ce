package utils

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// Log levels in increasing severity.
const (
	LevelDebug = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger provides structured, leveled logging throughout the application.
type Logger struct {
	minLevel int
	info     *log.Logger
	warn     *log.Logger
	err      *log.Logger
	debug    *log.Logger
}

// NewLogger creates a new Logger writing to stdout/stderr. Messages
// below level are suppressed; level names are case-insensitive and an
// unknown name falls back to info.
func NewLogger(level string) *Logger {
	flags := 0
	return &Logger{
		minLevel: parseLevel(level),
		info:     log.New(os.Stdout, "", flags),
		warn:     log.New(os.Stdout, "", flags),
		err:      log.New(os.Stderr, "", flags),
		debug:    log.New(os.Stdout, "", flags),
	}
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) timestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}

func (l *Logger) Info(format string, args ...any) {
	if l.minLevel > LevelInfo {
		return
	}
	l.info.Printf(fmt.Sprintf("[%s] \033[32mINFO\033[0m  %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Warn(format string, args ...any) {
	if l.minLevel > LevelWarn {
		return
	}
	l.warn.Printf(fmt.Sprintf("[%s] \033[33mWARN\033[0m  %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.err.Printf(fmt.Sprintf("[%s] \033[31mERROR\033[0m %s\n", l.timestamp(), format), args...)
}

func (l *Logger) Debug(format string, args ...any) {
	if l.minLevel > LevelDebug {
		return
	}
	l.debug.Printf(fmt.Sprintf("[%s] \033[36mDEBUG\033[0m %s\n", l.timestamp(), format), args...)
}
