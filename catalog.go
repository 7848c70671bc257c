package xmsg

import (
	"errors"
	"strconv"
	"sync"
)

// MessageType is the dispatch key selecting which listeners a broadcast reaches.
type MessageType uint16

const (
	Unknown MessageType = iota
	ApplicationPaused
	ApplicationQuit

	// CustomBase is the first identifier free for integrators:
	//
	//	const (
	//	    LevelLoaded = xmsg.CustomBase + iota
	//	    ScoreChanged
	//	)
	CustomBase MessageType = 64
)

var (
	ErrReservedMessageType      = errors.New("xmsg: message type is reserved")
	ErrDuplicateMessageTypeName = errors.New("xmsg: message type name already registered")
)

var builtinNames = map[MessageType]string{
	Unknown:           "Unknown",
	ApplicationPaused: "ApplicationPaused",
	ApplicationQuit:   "ApplicationQuit",
}

var (
	typeNamesMu sync.RWMutex
	typeNames   = map[MessageType]string{}
)

// RegisterMessageTypeName attaches a diagnostic name to an integrator identifier.
// Re-registering the same (type, name) pair is a no-op.
func RegisterMessageTypeName(t MessageType, name string) error {
	if name == "" {
		return errors.New("xmsg: message type name must not be empty")
	}
	if t < CustomBase {
		return ErrReservedMessageType
	}
	typeNamesMu.Lock()
	defer typeNamesMu.Unlock()
	for other, n := range typeNames {
		if n == name && other != t {
			return ErrDuplicateMessageTypeName
		}
	}
	for _, n := range builtinNames {
		if n == name {
			return ErrDuplicateMessageTypeName
		}
	}
	typeNames[t] = name
	return nil
}

func (t MessageType) String() string {
	if n, ok := builtinNames[t]; ok {
		return n
	}
	typeNamesMu.RLock()
	n, ok := typeNames[t]
	typeNamesMu.RUnlock()
	if ok {
		return n
	}
	return "MessageType(" + strconv.Itoa(int(t)) + ")"
}
