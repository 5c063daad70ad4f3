package app

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"", logrus.InfoLevel},
		{"warn", logrus.WarnLevel},
		{"warning", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseLogLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidLogLevel)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewLogger(LoggerConfig{Level: "warn", Format: "json", Output: &buf})
	require.NoError(t, err)

	log.Info("hidden")
	log.WithField("component", "engine").Warn("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, "warning", entry["level"])
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	_, err := NewLogger(LoggerConfig{Level: "loud"})
	assert.ErrorIs(t, err, ErrInvalidLogLevel)

	_, err = NewLogger(LoggerConfig{Level: "info", Format: "xml"})
	assert.ErrorIs(t, err, ErrInvalidLogFormat)
}

func TestDefaultLoggerConfig(t *testing.T) {
	log, err := NewLogger(DefaultLoggerConfig())
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}
