package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LoggerConfig configures the logger.
type LoggerConfig struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// Format is text or json.
	Format string
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultLoggerConfig returns the default logger configuration.
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:  "info",
		Format: "text",
		Output: os.Stderr,
	}
}

// ParseLogLevel parses one of debug, info, warn (or warning) and error.
func ParseLogLevel(s string) (logrus.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return logrus.DebugLevel, nil
	case "info", "":
		return logrus.InfoLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("%w %q (must be debug, info, warn, or error)", ErrInvalidLogLevel, s)
	}
}

// NewLogger creates a logger from cfg.
func NewLogger(cfg LoggerConfig) (*logrus.Logger, error) {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetLevel(level)
	if cfg.Output != nil {
		log.SetOutput(cfg.Output)
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("%w %q (must be text or json)", ErrInvalidLogFormat, cfg.Format)
	}
	return log, nil
}
