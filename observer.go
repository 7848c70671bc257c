package xmsg

import (
	"github.com/trickstertwo/xlog"
)

// Observer receives registry lifecycle events. Implementations should be non-blocking.
type Observer interface {
	OnEvent(e Event)
}

// ObserverFunc is an Adapter that lets a plain function satisfy Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnEvent(e Event) { f(e) }

// LoggingObserver is an Adapter that emits registry events via xlog, gated by
// the diagnostic flags in Config. Warnings and programming errors are always logged.
type LoggingObserver struct {
	Logger *xlog.Logger
	Config Config
}

func (o LoggingObserver) OnEvent(e Event) {
	if o.Logger == nil {
		return
	}
	ev := o.Logger.With(
		xlog.Str("type", string(e.Type)),
		xlog.Str("message_type", e.MessageType.String()),
	)
	if e.Listener != "" {
		ev = ev.With(xlog.Str("listener", e.Listener))
	}
	switch e.Type {
	case DuplicateListener:
		ev.Error().Msg("xmsg: adding the same listener multiple times")
	case RecursiveLock:
		ev.Error().Err(e.Err).Msg("xmsg: recursive message calling")
	case UnknownRemoval:
		ev.Warn().Msg("xmsg: attempting to remove listener but the messenger doesn't know about this message type")
	case Error:
		ev.Warn().Err(e.Err).Msg("xmsg: operation failed")
	case ListenerAdded:
		if o.Config.LogAllMessages || o.Config.LogAddListener {
			ev.Info().Msg("xmsg: listener adding")
		}
	case ListenerRemoved:
		if o.Config.LogAllMessages {
			ev.Info().Msg("xmsg: listener removing")
		}
	case BroadcastStart:
		if o.Config.LogAllMessages || o.Config.LogBroadcast {
			ev.Info().Str("description", e.Description).Msg("xmsg: broadcast")
		}
	case BroadcastDone:
		if o.Config.LogAllMessages {
			ev.With(xlog.Dur("duration", e.Duration)).Debug().Msg("xmsg: broadcast done")
		}
	case MarkedPermanent:
		if o.Config.LogAllMessages {
			ev.Info().Msg("xmsg: mark as permanent")
		}
	case CleanedUp:
		if o.Config.LogAllMessages {
			ev.Info().Msg("xmsg: cleanup; make sure that none of the necessary listeners are removed")
		}
	}
}
