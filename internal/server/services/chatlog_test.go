package services

import (
	"context"
	"testing"

	"github.com/akolosov/fincoach/internal/common"
	"github.com/akolosov/fincoach/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChatLogAppend_RejectsUnknownRole(t *testing.T) {
	t.Parallel()

	s := NewChatLogService(nil, newFakeRepoManager())

	_, err := s.Append(context.Background(), "user-1", "system", "nope")
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
}

func TestChatLogRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewChatLogService(nil, newFakeRepoManager())

	_, err := s.Append(context.Background(), "user-1", models.RoleUser, "hi")
	require.NoError(t, err)
	_, err = s.Append(context.Background(), "user-1", models.RoleAssistant, "hello")
	require.NoError(t, err)
	_, err = s.Append(context.Background(), "user-2", models.RoleUser, "other")
	require.NoError(t, err)

	msgs, err := s.List(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleUser, msgs[0].Role)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)

	n, err := s.Clear(context.Background(), "user-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	msgs, err = s.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, msgs)
}
