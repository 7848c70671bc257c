package xmsg

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// Messenger routes typed messages to the listeners registered for their
// MessageType. Build one per process and hand it to every component that
// publishes or subscribes.
//
// Broadcast runs listeners synchronously on the caller's goroutine, in
// registration order, on a snapshot of the invocation list. The table is
// guarded by a mutex, so listeners may register, remove or broadcast from
// inside a handler.
type Messenger struct {
	cfg         Config
	logger      *xlog.Logger
	clock       xclock.Clock
	logging     LoggingObserver
	middlewares []Middleware
	guard       bool

	mu        sync.RWMutex
	table     map[MessageType]entry
	permanent map[MessageType]struct{}

	observersMu  sync.RWMutex
	observers    []Observer
	observerPool *ObserverPool

	metrics   *messengerMetrics
	closeOnce sync.Once
}

type messengerMetrics struct {
	broadcasts atomic.Uint64
	deliveries atomic.Uint64
	failures   atomic.Uint64
	added      atomic.Uint64
	removed    atomic.Uint64
	cleanups   atomic.Uint64
}

// Config returns the flags the messenger was built with.
func (m *Messenger) Config() Config { return m.cfg }

// AddListener registers l under t. Every listener under one MessageType must
// take the same payload type T; a mismatch fails with *ListenerSignatureError
// and leaves the table unchanged. Adding the same listener twice is reported
// as a DuplicateListener event but still registers it, so it fires twice.
func AddListener[T Envelope](m *Messenger, t MessageType, l *Listener[T]) error {
	if l == nil || l.fn == nil {
		return ErrNilListener
	}

	m.mu.Lock()
	var list *invocationList[T]
	if e, ok := m.table[t]; ok {
		list, ok = e.(*invocationList[T])
		if !ok {
			registered := e.payloadType()
			m.mu.Unlock()
			return m.fail(t, l.String(), &ListenerSignatureError{
				Op:         "add",
				Type:       t,
				Registered: registered,
				Given:      reflect.TypeFor[T](),
			})
		}
	} else {
		list = newInvocationList[T]()
		m.table[t] = list
	}
	duplicate := list.contains(l)
	list.add(l)
	m.mu.Unlock()

	m.metrics.added.Add(1)
	m.notify(Event{Type: ListenerAdded, MessageType: t, Listener: l.String()})
	if duplicate {
		m.notify(Event{Type: DuplicateListener, MessageType: t, Listener: l.String()})
	}
	return nil
}

// RemoveListener unregisters the most recently added occurrence of l under t
// and reports whether one was removed. An unknown t is a warning, not an
// error. The entry for t is dropped once its last listener is gone.
func RemoveListener[T Envelope](m *Messenger, t MessageType, l *Listener[T]) (bool, error) {
	if l == nil {
		return false, ErrNilListener
	}

	m.mu.Lock()
	e, ok := m.table[t]
	if !ok {
		m.mu.Unlock()
		m.notify(Event{Type: UnknownRemoval, MessageType: t, Listener: l.String()})
		return false, nil
	}
	list, ok := e.(*invocationList[T])
	if !ok {
		registered := e.payloadType()
		m.mu.Unlock()
		return false, m.fail(t, l.String(), &ListenerSignatureError{
			Op:         "remove",
			Type:       t,
			Registered: registered,
			Given:      reflect.TypeFor[T](),
		})
	}
	removed := list.removeLast(l)
	if list.len() == 0 {
		delete(m.table, t)
	}
	m.mu.Unlock()

	if removed {
		m.metrics.removed.Add(1)
		m.notify(Event{Type: ListenerRemoved, MessageType: t, Listener: l.String()})
	}
	return removed, nil
}

// Broadcast delivers msg to every listener registered for msg.MessageType().
// The first listener error stops delivery and is returned unchanged.
func (m *Messenger) Broadcast(msg Envelope) error {
	if msg == nil {
		return ErrNilMessage
	}
	t := msg.MessageType()
	m.metrics.broadcasts.Add(1)
	m.notify(Event{Type: BroadcastStart, MessageType: t, Description: msg.Description()})

	m.mu.RLock()
	e, ok := m.table[t]
	var (
		calls      []Dispatch
		registered reflect.Type
		accepted   bool
	)
	if ok {
		registered = e.payloadType()
		if accepted = e.accepts(msg); accepted {
			calls = e.dispatchers()
		}
	}
	m.mu.RUnlock()

	if !ok {
		if m.cfg.RequireListenerOnBroadcast {
			return m.fail(t, "", &NoListenerError{Type: t})
		}
		return nil
	}
	if !accepted {
		return m.fail(t, "", &BroadcastSignatureError{
			Type:       t,
			Registered: registered,
			Given:      reflect.TypeOf(msg),
		})
	}

	if m.guard {
		if err := msg.Lock(); err != nil {
			m.notify(Event{Type: RecursiveLock, MessageType: t, Err: err})
		} else {
			defer msg.Release()
		}
	}

	start := m.clock.Now()
	var err error
	for _, call := range calls {
		if err = Chain(call, m.middlewares...)(msg); err != nil {
			break
		}
		m.metrics.deliveries.Add(1)
	}
	if err != nil {
		m.metrics.failures.Add(1)
	}
	m.notify(Event{Type: BroadcastDone, MessageType: t, Duration: m.clock.Since(start), Err: err})
	return err
}

// MarkPermanent exempts t from Cleanup for the life of the messenger.
func (m *Messenger) MarkPermanent(t MessageType) {
	m.mu.Lock()
	m.permanent[t] = struct{}{}
	m.mu.Unlock()
	m.notify(Event{Type: MarkedPermanent, MessageType: t})
}

func (m *Messenger) IsPermanent(t MessageType) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.permanent[t]
	return ok
}

// Cleanup drops every registration whose MessageType is not permanent and
// returns the dropped types in ascending order. Call it on scene or level
// transitions.
func (m *Messenger) Cleanup() []MessageType {
	m.mu.Lock()
	var removed []MessageType
	for t := range m.table {
		if _, ok := m.permanent[t]; !ok {
			removed = append(removed, t)
			delete(m.table, t)
		}
	}
	m.mu.Unlock()

	slices.Sort(removed)
	m.metrics.cleanups.Add(1)
	m.notify(Event{Type: CleanedUp, Description: fmt.Sprintf("removed=%d", len(removed))})
	return removed
}

func (m *Messenger) HasListeners(t MessageType) bool {
	return m.ListenerCount(t) > 0
}

func (m *Messenger) ListenerCount(t MessageType) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.table[t]; ok {
		return e.len()
	}
	return 0
}

// Table returns a snapshot of the registration table ordered by MessageType.
func (m *Messenger) Table() []Registration {
	m.mu.RLock()
	out := make([]Registration, 0, len(m.table))
	for t, e := range m.table {
		_, perm := m.permanent[t]
		out = append(out, Registration{
			Type:        t,
			PayloadType: e.payloadType(),
			Listeners:   e.names(),
			Permanent:   perm,
		})
	}
	m.mu.RUnlock()
	slices.SortFunc(out, func(a, b Registration) int { return int(a.Type) - int(b.Type) })
	return out
}

// PrintRegistrationTable logs one line per registered MessageType.
func (m *Messenger) PrintRegistrationTable() {
	rows := m.Table()
	m.logger.Info().Msg("xmsg: === registration table ===")
	for _, r := range rows {
		m.logger.Info().
			Str("message_type", r.Type.String()).
			Str("payload", r.PayloadType.String()).
			Str("listeners", "["+strings.Join(r.Listeners, ", ")+"]").
			Str("permanent", fmt.Sprint(r.Permanent)).
			Msg("xmsg: registration")
	}
}

// Metrics returns current messenger counters.
func (m *Messenger) Metrics() Metrics {
	out := Metrics{
		Broadcasts:       m.metrics.broadcasts.Load(),
		Deliveries:       m.metrics.deliveries.Load(),
		Failures:         m.metrics.failures.Load(),
		ListenersAdded:   m.metrics.added.Load(),
		ListenersRemoved: m.metrics.removed.Load(),
		Cleanups:         m.metrics.cleanups.Load(),
	}
	if m.observerPool != nil {
		out.EventsDropped = m.observerPool.Stats().Dropped
	}
	return out
}

// Close drains the observer pool, if any. The registration table is untouched.
func (m *Messenger) Close() error {
	var closeErr error
	m.closeOnce.Do(func() {
		if m.observerPool == nil {
			return
		}
		if err := m.observerPool.Close(5 * time.Second); err != nil {
			m.logger.Warn().Err(err).Msg("xmsg: observer pool shutdown timeout")
			closeErr = err
		}
	})
	return closeErr
}

// AddObserver registers an observer (thread-safe).
func (m *Messenger) AddObserver(obs Observer) {
	if obs == nil {
		return
	}
	m.observersMu.Lock()
	m.observers = append(m.observers, obs)
	m.observersMu.Unlock()
}

// RemoveObserver removes the first observer equal to obs. Observers of
// non-comparable types (ObserverFunc) can't be matched and stay registered.
func (m *Messenger) RemoveObserver(obs Observer) {
	if obs == nil || !reflect.TypeOf(obs).Comparable() {
		return
	}
	m.observersMu.Lock()
	defer m.observersMu.Unlock()

	for i, o := range m.observers {
		if reflect.TypeOf(o) == reflect.TypeOf(obs) && o == obs {
			m.observers = slices.Delete(m.observers, i, i+1)
			break
		}
	}
}

func (m *Messenger) fail(t MessageType, listener string, err error) error {
	m.metrics.failures.Add(1)
	m.notify(Event{Type: Error, MessageType: t, Listener: listener, Err: err})
	return err
}

// notify logs e, then hands it to observers: through the pool when one is
// configured, inline otherwise.
func (m *Messenger) notify(e Event) {
	e.At = m.clock.Now()
	m.logging.OnEvent(e)

	m.observersMu.RLock()
	if len(m.observers) == 0 {
		m.observersMu.RUnlock()
		return
	}
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.observersMu.RUnlock()

	if m.observerPool != nil {
		m.observerPool.Notify(e, observers)
		return
	}
	for _, o := range observers {
		o.OnEvent(e)
	}
}
