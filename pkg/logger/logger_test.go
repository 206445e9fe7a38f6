package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnsSingleton(t *testing.T) {
	assert.Same(t, New(), New())
}

func TestAuditCarriesFields(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	l.Audit(logrus.Fields{"filename": "photo.png", "size": 42}).Warn("File upload rejected")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "photo.png", entry["filename"])
	assert.Equal(t, true, entry["audit"])
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "File upload rejected", entry["msg"])
}

func TestPrintfHelpers(t *testing.T) {
	l := &Logger{Logger: logrus.New()}
	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, DisableColors: true})
	l.SetLevel(logrus.DebugLevel)

	l.Info("Cleaned up old file: %s", "a.png")
	l.Debug("debug %d", 1)

	assert.Contains(t, buf.String(), "Cleaned up old file: a.png")
	assert.Contains(t, buf.String(), "debug 1")
	assert.True(t, l.IsDebugEnabled())
}
