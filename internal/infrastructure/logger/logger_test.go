package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *Config
		level  zapcore.Level
		output string
	}{
		{"json to stdout", &Config{Level: "info", Format: "json", Output: "stdout"}, zapcore.InfoLevel, "stdout"},
		{"console debug to stderr", &Config{Level: "debug", Format: "console", Output: "stderr"}, zapcore.DebugLevel, "stderr"},
		{"unknown level falls back to info", &Config{Level: "verbose", Format: "json"}, zapcore.InfoLevel, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New(tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.True(t, log.Core().Enabled(tt.level))
			assert.Equal(t, DefaultTimeFormat, tt.cfg.TimeFormat)
		})
	}
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.log")

	log, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)
	log.Info("payment allocated")
	_ = Sync(log)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "payment allocated")
}

func TestNew_UnwritableFile(t *testing.T) {
	_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.LogConfig{Level: "warn", Format: "json", Output: "stderr"})
	assert.Equal(t, "warn", cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.Equal(t, DefaultTimeFormat, cfg.TimeFormat)
	assert.Equal(t, zapcore.WarnLevel, cfg.ZapLevel())
}
