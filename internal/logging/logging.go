package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Log levels
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// ANSI backgrounds used for level tags and HTTP access lines
const (
	bgRed    = "\033[97;41m"
	bgGreen  = "\033[97;42m"
	bgYellow = "\033[90;43m"
	bgBlue   = "\033[97;44m"
	bgCyan   = "\033[97;46m"
	reset    = "\033[0m"
)

type level struct {
	rank int
	tag  string
}

var levels = map[string]level{
	LevelDebug: {0, bgBlue + "[DEBUG]" + reset},
	LevelInfo:  {1, bgGreen + "[INFO]" + reset},
	LevelWarn:  {2, bgYellow + "[WARN]" + reset},
	LevelError: {3, bgRed + "[ERROR]" + reset},
}

var ErrInvalidConfig = errors.New("invalid logging configuration")

// Logger writes level-tagged lines. Lines below the configured level are dropped,
// except errors which are always written.
type Logger struct {
	*log.Logger
	writer      io.WriteCloser
	minRank     int
	logRequests bool
}

// NewLogger writes to stdout and to a size-rotated file
func NewLogger(config *Config) (*Logger, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	path := config.File
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, rest)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rotating := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.MaxSize, // MB
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge, // days
		Compress:   true,
	}

	return &Logger{
		Logger:      log.New(io.MultiWriter(rotating, os.Stdout), "", log.LstdFlags),
		writer:      rotating,
		minRank:     levels[strings.ToLower(config.Level)].rank,
		logRequests: config.LogRequests,
	}, nil
}

// NewWriterLogger logs to w without rotation. Unknown levels mean info.
func NewWriterLogger(w io.Writer, lvl string) *Logger {
	l, ok := levels[strings.ToLower(lvl)]
	if !ok {
		l = levels[LevelInfo]
	}
	return &Logger{
		Logger:  log.New(w, "", log.LstdFlags),
		minRank: l.rank,
	}
}

func (l *Logger) Close() error {
	if l.writer == nil {
		return nil
	}
	return l.writer.Close()
}

func (l *Logger) logAt(name, format string, v ...interface{}) {
	lvl := levels[name]
	if name != LevelError && lvl.rank < l.minRank {
		return
	}
	l.Printf(lvl.tag+" "+format, v...)
}

func (l *Logger) Debug(format string, v ...interface{}) { l.logAt(LevelDebug, format, v...) }
func (l *Logger) Info(format string, v ...interface{}) { l.logAt(LevelInfo, format, v...) }
func (l *Logger) Warn(format string, v ...interface{}) { l.logAt(LevelWarn, format, v...) }
func (l *Logger) Error(format string, v ...interface{}) { l.logAt(LevelError, format, v...) }

func methodColor(method string) string {
	switch method {
	case http.MethodPost:
		return bgCyan
	case http.MethodPut, http.MethodPatch:
		return bgYellow
	case http.MethodDelete:
		return bgRed
	default:
		return bgBlue
	}
}

func statusColor(status int) string {
	switch {
	case status >= 500:
		return bgRed
	case status >= 400:
		return bgYellow
	case status >= 300:
		return bgCyan
	case status >= 200:
		return bgGreen
	default:
		return bgBlue
	}
}

func paint(color string, v interface{}) string {
	return fmt.Sprintf("%s %v %s", color, v, reset)
}

// LogHTTPRequest writes an access line when LOG_REQUESTS is on
func (l *Logger) LogHTTPRequest(method, path, clientID, requestID string, status, bytes int, latency string) {
	if !l.logRequests {
		return
	}

	l.Printf("[HTTP] %s | %15s | %-17s | %s | %s | %d bytes | %s",
		paint(statusColor(status), status),
		clientID,
		paint(methodColor(method), method),
		path,
		requestID,
		bytes,
		latency,
	)
}

// LogHTTPError writes a failed request regardless of LOG_REQUESTS
func (l *Logger) LogHTTPError(method, path, clientID string, status int, message string, err error) {
	l.Printf("[HTTP-ERROR] %s | %15s | %-17s | %s | %s: %v",
		paint(statusColor(status), status),
		clientID,
		paint(methodColor(method), method),
		path,
		message,
		err,
	)
}
