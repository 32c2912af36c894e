package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogLevel orders log severities.
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string to a level. Unknown names fall back to INFO.
func ParseLevel(s string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Logger writes every level to the optional file and the configured
// minimum level and above to the console.
type Logger struct {
	consoleLogger *log.Logger
	fileLogger    *log.Logger
	file          *os.File
	level         LogLevel
}

var globalLogger *Logger

// InitLogger installs the process logger. Console output goes to w
// (os.Stderr when nil). A non-empty dir also enables a timestamped log file.
func InitLogger(level LogLevel, w io.Writer, dir string) error {
	if w == nil {
		w = os.Stderr
	}
	l := &Logger{
		consoleLogger: log.New(w, "", log.LstdFlags),
		level:         level,
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
		name := filepath.Join(dir, fmt.Sprintf("roadrush_%s.log", time.Now().Format("2006-01-02_15-04-05")))
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		l.file = f
		l.fileLogger = log.New(f, "", log.LstdFlags)
	}

	CloseLogger()
	globalLogger = l
	return nil
}

// CloseLogger flushes and detaches the process logger.
func CloseLogger() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
	}
	globalLogger = nil
}

func LogTrace(format string, args ...interface{}) { logMessage(TRACE, format, args...) }
func LogDebug(format string, args ...interface{}) { logMessage(DEBUG, format, args...) }
func LogInfo(format string, args ...interface{})  { logMessage(INFO, format, args...) }
func LogWarn(format string, args ...interface{})  { logMessage(WARN, format, args...) }
func LogError(format string, args ...interface{}) { logMessage(ERROR, format, args...) }

// Enabled reports whether a message at level would reach any sink.
// Callers use it to skip building expensive debug dumps.
func Enabled(level LogLevel) bool {
	if globalLogger == nil {
		return false
	}
	return globalLogger.fileLogger != nil || level >= globalLogger.level
}

func logMessage(level LogLevel, format string, args ...interface{}) {
	if globalLogger == nil {
		return
	}

	message := fmt.Sprintf("[%s] %s", level.String(), fmt.Sprintf(format, args...))

	if globalLogger.fileLogger != nil {
		globalLogger.fileLogger.Println(message)
	}
	if level >= globalLogger.level {
		globalLogger.consoleLogger.Println(message)
	}
}
