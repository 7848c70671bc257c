package xmsg

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xlog"
)

func TestObserverPool_DeliversInOrderWithOneWorker(t *testing.T) {
	var (
		mu   sync.Mutex
		got  []EventType
		done = make(chan struct{})
	)
	obs := ObserverFunc(func(e Event) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e.Type)
		if e.Type == CleanedUp {
			close(done)
		}
	})

	m, err := NewMessengerBuilder().WithObserverPool(1, 64).WithObserver(obs).Build()
	require.NoError(t, err)

	require.NoError(t, AddListener(m, ApplicationPaused, Listen(func(*ApplicationPausedMsg) error { return nil })))
	require.NoError(t, m.Broadcast(NewApplicationPausedMsg(true)))
	m.Cleanup()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("observer pool did not deliver")
	}
	require.NoError(t, m.Close())
	require.NoError(t, m.Close())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventType{ListenerAdded, BroadcastStart, BroadcastDone, CleanedUp}, got)
}

func TestObserverPool_DropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	started := make(chan struct{}, 1)
	op := NewObserverPool(t.Context(), 1, 1)
	obs := []Observer{ObserverFunc(func(Event) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-block
	})}

	op.Notify(Event{Type: MarkedPermanent}, obs)
	<-started // worker is now busy
	op.Notify(Event{Type: MarkedPermanent}, obs)
	op.Notify(Event{Type: MarkedPermanent}, obs)
	op.Notify(Event{Type: MarkedPermanent}, obs)

	assert.Equal(t, uint64(2), op.Stats().Dropped)
	close(block)
	require.NoError(t, op.Close(time.Second))

	stats := op.Stats()
	assert.Equal(t, uint64(2), stats.Processed)
	assert.Equal(t, 1, stats.Workers)
	assert.Equal(t, 1, stats.BufferSize)
}

func TestObserverPool_SurvivesObserverPanic(t *testing.T) {
	op := NewObserverPool(t.Context(), 1, 8)
	var after []EventType
	var mu sync.Mutex
	obs := []Observer{
		ObserverFunc(func(Event) { panic("observer bug") }),
		ObserverFunc(func(e Event) { mu.Lock(); after = append(after, e.Type); mu.Unlock() }),
	}
	op.Notify(Event{Type: MarkedPermanent}, obs)
	op.Notify(Event{Type: CleanedUp}, obs)
	require.NoError(t, op.Close(time.Second))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []EventType{MarkedPermanent, CleanedUp}, after)
}

func TestMetrics_EventsDropped(t *testing.T) {
	block := make(chan struct{})
	m, err := NewMessengerBuilder().
		WithObserverPool(1, 1).
		WithObserver(ObserverFunc(func(Event) { <-block })).
		Build()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		m.MarkPermanent(ApplicationQuit)
	}
	assert.Positive(t, m.Metrics().EventsDropped)
	close(block)
	require.NoError(t, m.Close())
}

func TestLoggingObserver(t *testing.T) {
	events := []Event{
		{Type: ListenerAdded, MessageType: ApplicationPaused, Listener: "a"},
		{Type: ListenerRemoved, MessageType: ApplicationPaused, Listener: "a"},
		{Type: DuplicateListener, MessageType: ApplicationPaused, Listener: "a"},
		{Type: UnknownRemoval, MessageType: ApplicationQuit},
		{Type: BroadcastStart, MessageType: ApplicationQuit, Description: " reason=user"},
		{Type: BroadcastDone, MessageType: ApplicationQuit, Duration: time.Millisecond},
		{Type: MarkedPermanent, MessageType: ApplicationQuit},
		{Type: CleanedUp, Description: "removed=0"},
		{Type: RecursiveLock, MessageType: ApplicationQuit, Err: ErrRecursiveLock},
		{Type: Error, MessageType: ApplicationQuit, Err: errors.New("x")},
	}
	observers := []LoggingObserver{
		{},
		{Logger: xlog.Default()},
		{Logger: xlog.Default(), Config: Config{LogAllMessages: true}},
		{Logger: xlog.Default(), Config: Config{LogAddListener: true, LogBroadcast: true}},
	}
	for _, o := range observers {
		for _, e := range events {
			assert.NotPanics(t, func() { o.OnEvent(e) })
		}
	}
}
