package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   Level
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"trace", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestNewWithWriter_JSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(zapcore.AddSync(&buf), InfoLevel)

	log.Debug("hidden")
	log.Info("now playing",
		zap.String("component", "metadata"),
		zap.Duration("elapsed", 1500*time.Millisecond),
	)
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "now playing", entry["msg"])
	assert.Equal(t, "metadata", entry["component"])
	assert.Equal(t, "1.5s", entry["elapsed"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "caller")
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "fmcli.log")

	log, err := New(Config{Level: DebugLevel, OutputPath: path, MaxSize: 1})
	require.NoError(t, err)

	log.Debug("player started", zap.String("command", "ffplay"))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"player started"`)
	assert.Contains(t, string(data), `"command":"ffplay"`)
}
