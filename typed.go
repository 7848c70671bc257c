package xmsg

// Topic binds a payload type to a MessageType so that listening and
// broadcasting through it is checked by the compiler rather than at run time.
//
//	var Paused = xmsg.NewTopic[*xmsg.ApplicationPausedMsg](xmsg.ApplicationPaused)
//	err := Paused.Listen(m, xmsg.Listen(onPaused))
type Topic[T Envelope] struct {
	typ MessageType
}

func NewTopic[T Envelope](t MessageType) Topic[T] {
	return Topic[T]{typ: t}
}

func (tp Topic[T]) Type() MessageType { return tp.typ }

func (tp Topic[T]) Listen(m *Messenger, l *Listener[T]) error {
	return AddListener(m, tp.typ, l)
}

func (tp Topic[T]) Unlisten(m *Messenger, l *Listener[T]) (bool, error) {
	return RemoveListener(m, tp.typ, l)
}

// Broadcast delivers msg. A msg whose MessageType differs from the topic's is
// routed by its own MessageType, like any other Broadcast.
func (tp Topic[T]) Broadcast(m *Messenger, msg T) error {
	return m.Broadcast(msg)
}
