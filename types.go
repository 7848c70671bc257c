package xmsg

import "reflect"

// Registration is one row of the registration table.
type Registration struct {
	Type        MessageType
	PayloadType reflect.Type
	Listeners   []string
	Permanent   bool
}

// Metrics defines observable counters for the messenger.
type Metrics struct {
	Broadcasts       uint64
	Deliveries       uint64
	Failures         uint64
	ListenersAdded   uint64
	ListenersRemoved uint64
	Cleanups         uint64
	EventsDropped    uint64
}

// PoolStats returns telemetry about the observer pool.
type PoolStats struct {
	Dropped      uint64 // Events dropped due to full buffer
	Processed    uint64 // Events successfully processed
	ActiveEvents int    // Current queue depth
	Workers      int    // Number of dispatch goroutines
	BufferSize   int    // Channel capacity
}
