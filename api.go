package xmsg

// Broadcaster is the publishing side of a Messenger, for components that
// only emit messages.
type Broadcaster interface {
	Broadcast(msg Envelope) error
}

// API is the non-generic Messenger surface. Registration goes through the
// generic AddListener/RemoveListener functions or a Topic.
type API interface {
	Broadcaster
	MarkPermanent(t MessageType)
	IsPermanent(t MessageType) bool
	Cleanup() []MessageType
	PrintRegistrationTable()
	Table() []Registration
	HasListeners(t MessageType) bool
	ListenerCount(t MessageType) int
	Metrics() Metrics
	AddObserver(obs Observer)
	RemoveObserver(obs Observer)
	Close() error
}

var _ API = (*Messenger)(nil)
