package xmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pausedTopic = NewTopic[*ApplicationPausedMsg](ApplicationPaused)

func TestTopic(t *testing.T) {
	m, _ := newTestMessenger(t, Defaults())

	var got []bool
	l := Listen(func(msg *ApplicationPausedMsg) error {
		got = append(got, msg.Paused)
		return nil
	})
	require.NoError(t, pausedTopic.Listen(m, l))
	assert.Equal(t, ApplicationPaused, pausedTopic.Type())

	require.NoError(t, pausedTopic.Broadcast(m, NewApplicationPausedMsg(true)))
	require.NoError(t, pausedTopic.Broadcast(m, NewApplicationPausedMsg(false)))
	assert.Equal(t, []bool{true, false}, got)

	removed, err := pausedTopic.Unlisten(m, l)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.ErrorIs(t, pausedTopic.Broadcast(m, NewApplicationPausedMsg(true)), ErrNoListener)
}

func TestTopic_SharesTableWithUntypedAPI(t *testing.T) {
	m, _ := newTestMessenger(t, Defaults())
	require.NoError(t, AddListener(m, ApplicationPaused, Listen(func(*pauseMsg) error { return nil })))

	err := pausedTopic.Listen(m, Listen(func(*ApplicationPausedMsg) error { return nil }))
	assert.ErrorIs(t, err, ErrListenerSignature)
}
