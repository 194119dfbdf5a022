package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, InfoLevel, ParseLevel(""))
}

func TestConfigureJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf, Service: "sempozyum"})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	papers := Component("papers")
	papers.Info().Int64("paperID", 7).Msg("Paper submitted")
	Debug().Msg("suppressed at info level")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "sempozyum", entry["service"])
	assert.Equal(t, "papers", entry["component"])
	assert.Equal(t, "Paper submitted", entry["message"])
	assert.EqualValues(t, 7, entry["paperID"])
}
