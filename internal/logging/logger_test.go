package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskflow/internal/model"
)

func TestNew_WritesToFile(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"text", "text", `msg="task added"`},
		{"json", "json", `"msg":"task added"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logs", "taskflow.log")

			logger, closer, err := New(model.LogConfig{Level: "debug", Format: tt.format, File: path})
			require.NoError(t, err)

			logger.WithField("task_id", "t-1").Info("task added")
			require.NoError(t, closer.Close())

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.want)
			assert.Contains(t, string(data), "t-1")
		})
	}
}

func TestNew_Level(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.log")

	logger, closer, err := New(model.LogConfig{Level: "warn", Format: "text", File: path})
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())

	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(data), "hidden"))
	assert.True(t, strings.Contains(string(data), "shown"))
}

func TestNew_EmptyFileDiscards(t *testing.T) {
	logger, closer, err := New(model.LogConfig{Level: "info"})
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, closer.Close())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.LogConfig
	}{
		{"bad level", model.LogConfig{Level: "loud"}},
		{"bad format", model.LogConfig{Level: "info", Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := New(tt.cfg)
			assert.Error(t, err)
		})
	}
}
