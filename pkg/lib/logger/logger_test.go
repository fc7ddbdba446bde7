package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"koistore/pkg/lib/logger/sl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger_WrongEnv(t *testing.T) {
	_, err := SetupLogger("staging")
	assert.Error(t, err)
}

func TestSetupLogger_ProdSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := setupLogger("prod", &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	assert.Zero(t, buf.Len())

	log.With("op", "test").Error("visible", sl.Err(assert.AnError))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "visible", rec["msg"])
	assert.Equal(t, "test", rec["op"])
	assert.Equal(t, assert.AnError.Error(), rec["error"])
}

func TestSetupLogger_LocalIsPretty(t *testing.T) {
	var buf bytes.Buffer
	log, err := setupLogger("local", &buf)
	require.NoError(t, err)

	log.With("op", "pretty").Info("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), `"op": "pretty"`)
}
