package logging

import (
	"fmt"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	current *Logger
	config  *Config
)

// Configure sets the configuration used by the next GetLogger call.
// A logger built from an earlier configuration is closed.
func Configure(c *Config) {
	mu.Lock()
	defer mu.Unlock()

	config = c
	if current != nil {
		_ = current.Close()
		current = nil
	}
}

// GetLogger returns the process logger, building it on first use. Without
// Configure, or when the configured file cannot be opened, it logs to stdout.
func GetLogger() *Logger {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return current
	}

	if config != nil {
		l, err := NewLogger(config)
		if err == nil {
			current = l
			return current
		}
		fmt.Fprintf(os.Stderr, "logging: falling back to stdout: %v\n", err)
	}

	current = NewWriterLogger(os.Stdout, LevelInfo)
	return current
}
