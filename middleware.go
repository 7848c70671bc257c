package xmsg

import (
	"fmt"
)

// Dispatch is one type-erased listener invocation.
type Dispatch func(msg Envelope) error

// Middleware composes concerns around every listener invocation.
type Middleware func(next Dispatch) Dispatch

// RecoveryMiddleware converts a listener panic into an error. The error still
// aborts the remaining listeners and is returned from Broadcast.
func RecoveryMiddleware() Middleware {
	return func(next Dispatch) Dispatch {
		return func(msg Envelope) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("xmsg: listener panic recovered for %s: %v", msg.MessageType(), r)
				}
			}()
			return next(msg)
		}
	}
}

// Chain composes middlewares around a dispatch in order.
func Chain(d Dispatch, mws ...Middleware) Dispatch {
	if len(mws) == 0 {
		return d
	}
	wrapped := d
	// Apply in reverse so that first middleware wraps last.
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		wrapped = mws[i](wrapped)
	}
	return wrapped
}
