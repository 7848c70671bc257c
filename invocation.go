package xmsg

import (
	"reflect"
	"slices"
)

// entry is the type-erased view of one invocation list. The concrete value is
// always *invocationList[T] for the payload type T the first listener fixed.
type entry interface {
	payloadType() reflect.Type
	accepts(msg Envelope) bool
	dispatchers() []Dispatch
	names() []string
	len() int
}

type invocationList[T Envelope] struct {
	typ       reflect.Type
	listeners []*Listener[T]
}

func newInvocationList[T Envelope]() *invocationList[T] {
	return &invocationList[T]{typ: reflect.TypeFor[T]()}
}

func (l *invocationList[T]) payloadType() reflect.Type { return l.typ }

func (l *invocationList[T]) accepts(msg Envelope) bool {
	_, ok := msg.(T)
	return ok
}

// dispatchers snapshots the list; later adds and removes don't affect it.
func (l *invocationList[T]) dispatchers() []Dispatch {
	out := make([]Dispatch, len(l.listeners))
	for i, x := range l.listeners {
		fn := x.fn
		out[i] = func(msg Envelope) error { return fn(msg.(T)) }
	}
	return out
}

func (l *invocationList[T]) names() []string {
	out := make([]string, len(l.listeners))
	for i, x := range l.listeners {
		out[i] = x.String()
	}
	return out
}

func (l *invocationList[T]) len() int { return len(l.listeners) }

func (l *invocationList[T]) contains(x *Listener[T]) bool {
	return slices.Contains(l.listeners, x)
}

func (l *invocationList[T]) add(x *Listener[T]) {
	l.listeners = append(l.listeners, x)
}

// removeLast drops the most recently added occurrence of x.
func (l *invocationList[T]) removeLast(x *Listener[T]) bool {
	for i := len(l.listeners) - 1; i >= 0; i-- {
		if l.listeners[i] == x {
			l.listeners = slices.Delete(l.listeners, i, i+1)
			return true
		}
	}
	return false
}
