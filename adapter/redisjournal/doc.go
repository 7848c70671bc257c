// Package redisjournal records xmsg registry events in a Redis stream.
//
// The journal is an xmsg.Observer: every listener addition, removal,
// broadcast, cleanup and failure becomes one XADD entry, giving a durable
// trail of how the messenger was wired at run time. Nothing is ever read
// back into the messenger; Recent exists for tooling.
//
// Config keys for ConfigFromMap:
// - addr: "host:port" (default "127.0.0.1:6379")
// - stream: stream name (default "xmsg:journal")
// - max_len_approx: approximate MAXLEN trim (default 10000, 0 disables)
// - codec: xmsg codec name for the record field (default "json")
// - write_timeout: per-XADD timeout (default 500ms)
//
// Example:
//
//	b := xmsg.NewMessengerBuilder().WithObserverPool(1, 1024)
//	j, err := redisjournal.Use(b, redisjournal.Defaults())
//	if err != nil { ... }
//	defer j.Close()
//	m, err := b.Build()
package redisjournal
