package xmsg

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrListenerSignature           = errors.New("xmsg: listener signature mismatch")
	ErrBroadcastSignature          = errors.New("xmsg: broadcast signature mismatch")
	ErrNoListener                  = errors.New("xmsg: broadcast without listener")
	ErrRecursiveLock               = errors.New("xmsg: recursive message lock")
	ErrNilMessage                  = errors.New("xmsg: nil message")
	ErrNilListener                 = errors.New("xmsg: nil listener")
	ErrObserverPoolShutdownTimeout = errors.New("xmsg: observer pool shutdown timeout")
)

// ListenerSignatureError is returned by AddListener and RemoveListener when the
// listener's payload type differs from the one already registered for Type.
type ListenerSignatureError struct {
	Op         string // "add" or "remove"
	Type       MessageType
	Registered reflect.Type
	Given      reflect.Type
}

func (e *ListenerSignatureError) Error() string {
	return fmt.Sprintf("xmsg: attempting to %s listener with inconsistent signature for message type %s: current listeners have type %s and listener has type %s",
		e.Op, e.Type, e.Registered, e.Given)
}

func (e *ListenerSignatureError) Is(target error) bool { return target == ErrListenerSignature }

// BroadcastSignatureError is returned by Broadcast when the registered listeners
// cannot accept the payload's concrete type.
type BroadcastSignatureError struct {
	Type       MessageType
	Registered reflect.Type
	Given      reflect.Type
}

func (e *BroadcastSignatureError) Error() string {
	return fmt.Sprintf("xmsg: broadcasting message %q but listeners have a different signature than the broadcaster (listeners take %s, payload is %s)",
		e.Type, e.Registered, e.Given)
}

func (e *BroadcastSignatureError) Is(target error) bool { return target == ErrBroadcastSignature }

// NoListenerError is returned by Broadcast when RequireListenerOnBroadcast is
// enabled and nothing is registered for Type.
type NoListenerError struct {
	Type MessageType
}

func (e *NoListenerError) Error() string {
	return fmt.Sprintf("xmsg: broadcasting message %q but no listener found; try marking the message with MarkPermanent", e.Type)
}

func (e *NoListenerError) Is(target error) bool { return target == ErrNoListener }

// RecursiveLockError reports a Lock on an envelope whose guard is already engaged.
type RecursiveLockError struct {
	Type MessageType
}

func (e *RecursiveLockError) Error() string {
	return fmt.Sprintf("xmsg: recursive message calling for %s", e.Type)
}

func (e *RecursiveLockError) Is(target error) bool { return target == ErrRecursiveLock }
