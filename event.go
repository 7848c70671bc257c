package xmsg

import (
	"time"
)

// EventType enumerates registry lifecycle events for the Observer pattern.
type EventType string

const (
	ListenerAdded     EventType = "listener_added"
	ListenerRemoved   EventType = "listener_removed"
	DuplicateListener EventType = "duplicate_listener"
	UnknownRemoval    EventType = "unknown_removal"
	BroadcastStart    EventType = "broadcast_start"
	BroadcastDone     EventType = "broadcast_done"
	MarkedPermanent   EventType = "marked_permanent"
	CleanedUp         EventType = "cleaned_up"
	RecursiveLock     EventType = "recursive_lock"
	Error             EventType = "error"
)

// Event carries telemetry for observers.
type Event struct {
	Type        EventType
	MessageType MessageType
	Listener    string
	Description string
	Duration    time.Duration
	Err         error
	At          time.Time

	// Internal: attached for async dispatch
	observers []Observer
}
