package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	log := New("debug")
	assert.Equal(t, zerolog.DebugLevel, log.GetLevel())
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf, "info")

	log.Info().Msg("test message")
	log.Debug().Msg("hidden")

	assert.Contains(t, buf.String(), "test message")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DefaultLevel, ParseLevel(""))
	assert.Equal(t, DefaultLevel, ParseLevel("loud"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel(" ERROR "))
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf, "info"))

	log := FromContext(ctx)
	log.Info().Msg("test")
	assert.NotZero(t, buf.Len())
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	assert.Equal(t, DefaultLevel, log.GetLevel())
}

func TestWithRun(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithRun(NewWithWriter(buf, "info"), "run-1", "export.json")
	log.Info().Msg("built")

	assert.Contains(t, buf.String(), `"run_id":"run-1"`)
	assert.Contains(t, buf.String(), `"file":"export.json"`)
}

func TestWithRun_SkipsEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	log := WithRun(NewWithWriter(buf, "info"), "run-1", "")
	log = WithRun(log, "", "doc.json")
	log.Info().Msg("loaded")

	assert.Equal(t, 1, strings.Count(buf.String(), `"run_id"`))
	assert.Contains(t, buf.String(), `"file":"doc.json"`)
}
