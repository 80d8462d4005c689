package common

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	loggerMu sync.RWMutex
	logger   = logrus.New()
)

// Logger returns a log entry tagged with the given component name. Every engine package logs through
// an entry obtained here so output can be filtered by component.
//
// Parameters:
//   - component: the name of the subsystem emitting the log lines (e.g. "animation", "scene")
//
// Returns:
//   - *logrus.Entry: an entry carrying the "component" field
func Logger(component string) *logrus.Entry {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger.WithField("component", component)
}

// SetLogger replaces the process-wide logger. Passing nil restores a fresh default logger.
//
// Parameters:
//   - l: the logger to install
func SetLogger(l *logrus.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = logrus.New()
	}
	logger = l
}

// ConfigureLogger applies a level and an output format to the process-wide logger.
//
// Parameters:
//   - level: a logrus level name ("debug", "info", "warn", ...); empty keeps the current level
//   - format: "text" or "json"; empty keeps the current formatter
//
// Returns:
//   - error: when the level or format is not recognised
func ConfigureLogger(level, format string) error {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		logger.SetLevel(lvl)
	}

	switch strings.ToLower(format) {
	case "":
	case "text":
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}
