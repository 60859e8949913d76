package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ModesCycleIndependently(t *testing.T) {
	s := NewSession("s1", time.Now())

	assert.Equal(t, StateIdle, s.State(ModeChat))
	require.NoError(t, s.Begin(ModeChat))
	assert.Equal(t, StateAwaitingResponse, s.State(ModeChat))
	assert.Equal(t, StateIdle, s.State(ModeSummary))

	require.NoError(t, s.Begin(ModeSummary))
	assert.ErrorIs(t, s.Begin(ModeChat), ErrBusy)

	s.End(ModeChat)
	assert.Equal(t, StateIdle, s.State(ModeChat))
	assert.Equal(t, StateAwaitingResponse, s.State(ModeSummary))
	assert.NoError(t, s.Begin(ModeChat))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "awaiting_response", StateAwaitingResponse.String())
}
