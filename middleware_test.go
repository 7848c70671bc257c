package xmsg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next Dispatch) Dispatch {
			return func(msg Envelope) error {
				order = append(order, name+">")
				err := next(msg)
				order = append(order, "<"+name)
				return err
			}
		}
	}
	d := Chain(func(Envelope) error { order = append(order, "listener"); return nil }, mw("a"), nil, mw("b"))

	require.NoError(t, d(NewApplicationQuitMsg("")))
	assert.Equal(t, []string{"a>", "b>", "listener", "<b", "<a"}, order)
}

func TestRecoveryMiddleware_PanicBecomesErrorAndAborts(t *testing.T) {
	m, err := NewMessengerBuilder().WithMiddleware(RecoveryMiddleware()).Build()
	require.NoError(t, err)

	reached := false
	require.NoError(t, AddListener(m, ApplicationQuit, Listen(func(*ApplicationQuitMsg) error { panic("save failed") })))
	require.NoError(t, AddListener(m, ApplicationQuit, Listen(func(*ApplicationQuitMsg) error { reached = true; return nil })))

	err = m.Broadcast(NewApplicationQuitMsg(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save failed")
	assert.Contains(t, err.Error(), "ApplicationQuit")
	assert.False(t, reached)
}

func TestMiddleware_SeesEveryListenerCall(t *testing.T) {
	calls := 0
	counting := func(next Dispatch) Dispatch {
		return func(msg Envelope) error {
			calls++
			return next(msg)
		}
	}
	m, err := NewMessengerBuilder().WithMiddleware(counting).Build()
	require.NoError(t, err)

	boom := errors.New("boom")
	require.NoError(t, AddListener(m, ApplicationQuit, Listen(func(*ApplicationQuitMsg) error { return nil })))
	require.NoError(t, AddListener(m, ApplicationQuit, Listen(func(*ApplicationQuitMsg) error { return nil })))
	require.NoError(t, m.Broadcast(NewApplicationQuitMsg("")))
	assert.Equal(t, 2, calls)

	require.NoError(t, AddListener(m, ApplicationQuit, Listen(func(*ApplicationQuitMsg) error { return boom })))
	require.NoError(t, AddListener(m, ApplicationQuit, Listen(func(*ApplicationQuitMsg) error { return nil })))
	assert.Same(t, boom, m.Broadcast(NewApplicationQuitMsg("")))
	assert.Equal(t, 5, calls)
}
