package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	type testCase struct {
		in   string
		want slog.Level
	}

	tests := []testCase{
		{in: "debug", want: slog.LevelDebug},
		{in: "WARN", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "", want: slog.LevelInfo},
		{in: "chatty", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestHandler_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(handler(&buf, "warn", "json"))
	logger.Info("dropped")
	logger.Warn("kept", "key", "accounting_invoices")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["msg"])
	assert.Equal(t, "accounting_invoices", line["key"])
}

func TestHandler_Text(t *testing.T) {
	var buf bytes.Buffer

	slog.New(handler(&buf, "info", "text")).Info("hello")

	assert.Contains(t, buf.String(), "msg=hello")
}
