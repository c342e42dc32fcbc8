package structured

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "debug", Output: &buf})

	logger.Info("Submitting news analysis", map[string]interface{}{
		"data_type": "url",
		"attempt":   1,
	})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "Submitting news analysis", lines[0]["msg"])
	assert.Equal(t, "url", lines[0]["data_type"])
	assert.Equal(t, float64(1), lines[0]["attempt"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "warn", Output: &buf})

	logger.Debug("hidden", nil)
	logger.Info("hidden", nil)
	logger.Warn("shown", nil)
	logger.Error("shown too", map[string]interface{}{"code": 500})

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "warning", lines[0]["level"])
	assert.Equal(t, "error", lines[1]["level"])
}

func TestLogger_NilFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf})

	assert.NotPanics(t, func() { logger.Info("no fields", nil) })
	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"debug":   logrus.DebugLevel,
		"DEBUG":   logrus.DebugLevel,
		"warn":    logrus.WarnLevel,
		"warning": logrus.WarnLevel,
		"error":   logrus.ErrorLevel,
		"info":    logrus.InfoLevel,
		"":        logrus.InfoLevel,
		"verbose": logrus.InfoLevel,
	}

	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestLogger_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger := New(Options{File: path})
	logger.Info("to file", nil)

	_, ok := logger.entry.Out.(interface{ Close() error })
	assert.True(t, ok, "file output should use a rotating writer")
}
