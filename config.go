package xmsg

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the diagnostic and policy flags. Each flag is independent.
type Config struct {
	// LogAllMessages logs every registry operation.
	LogAllMessages bool `env:"XMSG_LOG_ALL_MESSAGES" envDefault:"false"`
	// LogAddListener logs listener additions.
	LogAddListener bool `env:"XMSG_LOG_ADD_LISTENER" envDefault:"false"`
	// LogBroadcast logs each broadcast with the message description.
	LogBroadcast bool `env:"XMSG_LOG_BROADCAST" envDefault:"false"`
	// RequireListenerOnBroadcast turns a broadcast with no registered listener into ErrNoListener.
	RequireListenerOnBroadcast bool `env:"XMSG_REQUIRE_LISTENER" envDefault:"true"`
}

// Defaults returns logging off and RequireListenerOnBroadcast on.
func Defaults() Config {
	return Config{RequireListenerOnBroadcast: true}
}

// ConfigFromEnv loads Config from XMSG_* environment variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ConfigFromMap converts a generic map to Config, starting from Defaults.
func ConfigFromMap(m map[string]any) Config {
	c := Defaults()
	getBool := func(k string, d bool) bool {
		switch v := m[k].(type) {
		case bool:
			return v
		case string:
			switch v {
			case "true", "1", "yes", "on":
				return true
			case "false", "0", "no", "off":
				return false
			}
		}
		return d
	}
	c.LogAllMessages = getBool("log_all_messages", c.LogAllMessages)
	c.LogAddListener = getBool("log_add_listener", c.LogAddListener)
	c.LogBroadcast = getBool("log_broadcast", c.LogBroadcast)
	c.RequireListenerOnBroadcast = getBool("require_listener", c.RequireListenerOnBroadcast)
	return c
}
