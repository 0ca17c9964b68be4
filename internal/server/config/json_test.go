package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	body := `{
		"endpoint_addr": ":9000",
		"secret_key": "json-secret",
		"token_validity_duration": "6h",
		"llm_model": "json-model"
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	c.LoadDefaults()
	parseJson(c)

	assert.Equal(t, ":9000", c.EndpointAddr)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 6*time.Hour, c.TokenValidityDuration)
	assert.Equal(t, "json-model", c.LLMModel)
	// values absent from the file keep their defaults
	assert.Equal(t, "https://api.groq.com/openai/v1", c.LLMBaseURL)
}

func TestParseJson_NoFile(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd"}

	c := &Config{}
	c.LoadDefaults()
	require.NotPanics(t, func() { parseJson(c) })
	assert.Equal(t, ":3001", c.EndpointAddr)
}

func TestParseJson_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cmd", "-c", path}

	c := &Config{}
	require.Panics(t, func() { parseJson(c) })
}
