package xmsg

// Envelope is the contract every broadcast payload satisfies. Embed MessageBase
// and override Description to get one.
type Envelope interface {
	MessageType() MessageType
	Description() string
	// Lock engages the re-entrancy guard and reports ErrRecursiveLock when it
	// was already engaged. The guard stays engaged either way.
	Lock() error
	// Release clears the guard. Idempotent.
	Release()
}

// MessageBase carries the identifier and guard state. Use it by pointer
// (embedding it in a struct broadcast as *T) so the guard is shared.
type MessageBase struct {
	messageType MessageType
	locked      bool
}

// NewMessageBase fixes the identifier for the lifetime of the message.
func NewMessageBase(t MessageType) MessageBase {
	return MessageBase{messageType: t}
}

func (m *MessageBase) MessageType() MessageType { return m.messageType }

func (m *MessageBase) Description() string { return "" }

func (m *MessageBase) Lock() error {
	if m.locked {
		return &RecursiveLockError{Type: m.messageType}
	}
	m.locked = true
	return nil
}

func (m *MessageBase) Release() { m.locked = false }

// Locked reports whether the guard is engaged.
func (m *MessageBase) Locked() bool { return m.locked }
