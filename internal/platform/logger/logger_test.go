package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevelAndFormat(t *testing.T) {
	require.Equal(t, Debug, ParseLevel("DEBUG"))
	require.Equal(t, Warn, ParseLevel("warning"))
	require.Equal(t, Info, ParseLevel("nope"))
	require.Equal(t, FormatJSON, ParseFormat(" json "))
	require.Equal(t, FormatText, ParseFormat(""))
}

func TestZeroLogger_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, App: "clinic", Out: &buf})

	log.Debug("hidden", nil)
	log.With(map[string]any{"car_number": "12"}).Warn("publish failed", map[string]any{
		"error": errors.New("boom"),
		"":      "dropped",
	})

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var got map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &got))
	require.Equal(t, "warn", got["level"])
	require.Equal(t, "clinic", got["app"])
	require.Equal(t, "12", got["car_number"])
	require.Equal(t, "boom", got["error"])
	require.Equal(t, "publish failed", got["message"])
	_, hasEmpty := got[""]
	require.False(t, hasEmpty)
}

func TestZeroLogger_WithKeepsError(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: Info, Format: FormatJSON, Out: &buf})

	log.With(map[string]any{"error": errors.New("connection refused")}).Info("retry later", nil)

	var got map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &got))
	require.Equal(t, "connection refused", got["error"])
}
