package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	l, err := New("", "loud")
	assert.Error(t, err)
	assert.Nil(t, l)
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	l, err := New(path, "info")
	require.NoError(t, err)

	l.Info("reservation id=%d loaded", 42)
	l.Debug("hidden at info level")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "reservation id=42 loaded")
	assert.NotContains(t, string(data), "hidden at info level")
}

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, logrus.WarnLevel)

	l.Info("skipped")
	l.Warn("poll cycle failed: %v", "timeout")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "poll cycle failed: timeout", entry["msg"])
}
