package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(Config{Level: LevelInfo, Format: "json"}, &buf).WithComponent("submission")

	log.Info("order placed", "order_id", "ORD-20261019-AB12C")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "order placed", entry["msg"])
	assert.Equal(t, "submission", entry["component"])
	assert.Equal(t, "ORD-20261019-AB12C", entry["order_id"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(Config{Level: LevelWarn, Format: "text"}, &buf)

	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_ErrorAddsCaller(t *testing.T) {
	var buf bytes.Buffer
	log := newWithWriter(Config{Level: LevelInfo, Format: "json", EnableCaller: true}, &buf)

	log.Error("backup write failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	caller, _ := entry["caller"].(string)
	assert.True(t, strings.HasPrefix(caller, "logger_test.go:"), caller)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("DEBUG").String())
	assert.Equal(t, "ERROR", parseLevel(LevelError).String())
	assert.Equal(t, "INFO", parseLevel("verbose").String())
}
