package xmsg

import "fmt"

// ApplicationPausedMsg is broadcast when the host application loses or regains focus.
type ApplicationPausedMsg struct {
	MessageBase
	Paused bool
}

func NewApplicationPausedMsg(paused bool) *ApplicationPausedMsg {
	return &ApplicationPausedMsg{MessageBase: NewMessageBase(ApplicationPaused), Paused: paused}
}

func (m *ApplicationPausedMsg) Description() string {
	return fmt.Sprintf(" paused=%t", m.Paused)
}

// ApplicationQuitMsg is broadcast once, right before the host application exits.
type ApplicationQuitMsg struct {
	MessageBase
	Reason string
}

func NewApplicationQuitMsg(reason string) *ApplicationQuitMsg {
	return &ApplicationQuitMsg{MessageBase: NewMessageBase(ApplicationQuit), Reason: reason}
}

func (m *ApplicationQuitMsg) Description() string {
	if m.Reason == "" {
		return ""
	}
	return " reason=" + m.Reason
}
