package xmsg

import (
	"reflect"
	"runtime"
)

// Listener is a handler reference with identity. Keep the pointer returned by
// Listen to remove the listener later; two Listen calls on the same func are
// two distinct listeners.
type Listener[T Envelope] struct {
	fn   func(T) error
	name string
}

// Listen wraps fn. The listener's name defaults to the function's symbol.
func Listen[T Envelope](fn func(T) error) *Listener[T] {
	l := &Listener[T]{fn: fn}
	if fn != nil {
		if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
			l.name = f.Name()
		}
	}
	return l
}

// Named overrides the diagnostic name and returns l.
func (l *Listener[T]) Named(name string) *Listener[T] {
	l.name = name
	return l
}

func (l *Listener[T]) Name() string { return l.name }

func (l *Listener[T]) String() string {
	if l.name == "" {
		return "<anonymous>"
	}
	return l.name
}
