package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := configLogger("WARN", &buf)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "k=1")

	buf.Reset()
	logger = configLogger("bogus", &buf)
	logger.Debug("debug")
	logger.Info("info")
	assert.NotContains(t, buf.String(), "debug")
	assert.Contains(t, buf.String(), "msg=info")
}

func TestLoadConfigAtPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.yaml")

	m, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, m.Path())
	assert.FileExists(t, path)
}
