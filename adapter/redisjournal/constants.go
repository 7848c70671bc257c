package redisjournal

// Field constants (avoid typos/allocs)
const (
	fieldType        = "type"
	fieldMessageType = "message_type"
	fieldListener    = "listener"
	fieldCodec       = "codec"
	fieldRecord      = "record" // codec-encoded Record
)
