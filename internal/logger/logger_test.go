package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestNew_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "production", Level: "info"}, &buf)

	l.Debug().Msg("hidden")
	l.Info().Str("email", "ada@example.com").Msg("user registered")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "user registered", line["message"])
	assert.Equal(t, "ada@example.com", line["email"])
	assert.Contains(t, line, "time")
}

func TestNew_ConsoleInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newWithWriter(Config{Env: "development", Level: "debug"}, &buf)

	l.Debug().Msg("starting")
	assert.Contains(t, buf.String(), "starting")
	assert.False(t, json.Valid(buf.Bytes()))
}
