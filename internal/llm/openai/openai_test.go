package openai

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/akolosov/fincoach/internal/common"
	openaisdk "github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_MissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewProvider("")
	require.ErrorIs(t, err, common.ErrorConfigurationMissing)
}

func TestNewProvider_Options(t *testing.T) {
	p, err := NewProvider("gsk_test",
		WithModel("llama-3.3-70b-versatile"),
		WithBaseURL("https://api.groq.com/openai/v1"),
		WithRequestTimeout(10*time.Second),
		WithMaxRetries(1),
	)
	require.NoError(t, err)

	assert.Equal(t, "llama-3.3-70b-versatile", p.GetModel())
	assert.Equal(t, "https://api.groq.com/openai/v1", p.GetBaseURL())
	assert.Equal(t, 10*time.Second, p.requestTimeout)
	assert.Equal(t, uint64(1), p.maxRetries)
}

func TestNewProvider_Defaults(t *testing.T) {
	p, err := NewProvider("key")
	require.NoError(t, err)

	assert.Equal(t, defaultModel, p.GetModel())
	assert.Equal(t, DefaultBaseURL, p.GetBaseURL())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "rate limited", err: &openaisdk.Error{StatusCode: 429}, want: true},
		{name: "server error", err: &openaisdk.Error{StatusCode: 503}, want: true},
		{name: "bad request", err: &openaisdk.Error{StatusCode: 400}, want: false},
		{name: "bad key", err: &openaisdk.Error{StatusCode: 401}, want: false},
		{name: "transport failure", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}
