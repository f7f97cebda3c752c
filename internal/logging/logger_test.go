package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSinkWriterSplitsLines(t *testing.T) {
	var got []string
	w := &LineSinkWriter{Sink: func(line string) { got = append(got, line) }}

	n, err := w.Write([]byte("first\nsec"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	_, _ = w.Write([]byte("ond\n\n  \nthird"))

	assert.Equal(t, []string{"first", "second"}, got)
}

func TestNewJSONLoggerWritesUTCTimestamps(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger.Debug("hello", "cps", 12)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.EqualValues(t, 12, record["cps"])
	assert.Regexp(t, `Z$`, record["time"])
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	var sunk []string
	logger, err := New(Options{Level: "warn", Output: &buf, Sink: func(line string) { sunk = append(sunk, line) }})
	require.NoError(t, err)

	logger.Info("quiet")
	logger.Warn("loud")

	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")
	require.Len(t, sunk, 1)
	assert.Contains(t, sunk[0], "loud")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)

	_, err = New(Options{Format: "xml"})
	assert.Error(t, err)
}
