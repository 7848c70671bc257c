package xmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageBase(t *testing.T) {
	m := NewApplicationPausedMsg(true)
	assert.Equal(t, ApplicationPaused, m.MessageType())
	assert.Equal(t, " paused=true", m.Description())

	var base MessageBase
	assert.Equal(t, Unknown, base.MessageType())
	assert.Empty(t, base.Description())
}

func TestMessageBase_LockRelease(t *testing.T) {
	m := NewApplicationQuitMsg("")
	require.NoError(t, m.Lock())
	assert.True(t, m.Locked())

	err := m.Lock()
	require.ErrorIs(t, err, ErrRecursiveLock)
	var le *RecursiveLockError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, ApplicationQuit, le.Type)
	assert.True(t, m.Locked(), "guard stays engaged after a recursive lock")

	m.Release()
	m.Release()
	assert.False(t, m.Locked())
	assert.NoError(t, m.Lock())
}

func TestApplicationQuitMsg_Description(t *testing.T) {
	assert.Empty(t, NewApplicationQuitMsg("").Description())
	assert.Equal(t, " reason=user", NewApplicationQuitMsg("user").Description())
}
