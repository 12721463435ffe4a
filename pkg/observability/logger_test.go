package observability

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected logrus.Level
	}{
		{"debug", "debug", logrus.DebugLevel},
		{"warn", "warn", logrus.WarnLevel},
		{"upper case", "ERROR", logrus.ErrorLevel},
		{"unknown falls back to info", "chatty", logrus.InfoLevel},
		{"empty falls back to info", "", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := NewLogger(tt.level, &bytes.Buffer{})
			assert.Equal(t, tt.expected, logger.GetLevel())
		})
	}
}

func TestNewLogger_Output(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(DefaultLogLevel, &buf)

	logger.Info("hidden")
	assert.Zero(t, buf.Len())

	logger.WithField("rule", "NO_ELSE_ALLOWED").Warn("slow rule")
	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, `msg="slow rule"`)
	assert.Contains(t, out, "rule=NO_ELSE_ALLOWED")
}
