package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "input %q", in)
	}
}

func TestNew_WritesJSONWithService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Config{Level: "info", Service: "cpfgen"})
	log.Info().Int64("valid", 3).Msg("done")
	log.Debug().Msg("hidden")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "cpfgen", ev["service"])
	assert.Equal(t, "done", ev["message"])
	assert.EqualValues(t, 3, ev["valid"])
}

func TestNew_PrettyIsNotJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, Config{Pretty: true})
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
