package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		json    bool
		wantErr bool
	}{
		{name: "Text", level: "info", format: FormatText},
		{name: "JSON", level: "debug", format: FormatJSON, json: true},
		// буфер не терминал, поэтому JSON
		{name: "Auto on buffer", level: "warn", format: FormatAuto, json: true},
		{name: "Empty format", level: "INFO", format: "", json: true},
		{name: "Bad level", level: "loud", format: FormatText, wantErr: true},
		{name: "Bad format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := New(&buf, tt.level, tt.format)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)

			logger.Error("hello", "key", "value")

			if tt.json {
				var record map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
				assert.Equal(t, "hello", record["msg"])
				assert.Equal(t, "value", record["key"])
			} else {
				assert.True(t, strings.Contains(buf.String(), "msg=hello"))
			}
		})
	}
}

func TestNew_Level(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatText)
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
}
