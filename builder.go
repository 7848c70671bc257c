package xmsg

import (
	"context"
	"errors"

	"github.com/trickstertwo/xclock"
	"github.com/trickstertwo/xlog"
)

// MessengerBuilder constructs Messenger instances (Builder pattern).
type MessengerBuilder struct {
	cfg         Config
	logger      *xlog.Logger
	clock       xclock.Clock
	middlewares []Middleware
	observers   []Observer
	guard       bool

	poolWorkers int
	poolBuffer  int
}

// NewMessengerBuilder returns a builder starting from Defaults.
func NewMessengerBuilder() *MessengerBuilder {
	return &MessengerBuilder{cfg: Defaults()}
}

func (mb *MessengerBuilder) WithConfig(cfg Config) *MessengerBuilder {
	mb.cfg = cfg
	return mb
}

// WithConfigMap applies ConfigFromMap(cfg).
func (mb *MessengerBuilder) WithConfigMap(cfg map[string]any) *MessengerBuilder {
	mb.cfg = ConfigFromMap(cfg)
	return mb
}

func (mb *MessengerBuilder) WithLogger(l *xlog.Logger) *MessengerBuilder {
	mb.logger = l
	return mb
}

func (mb *MessengerBuilder) WithClock(c xclock.Clock) *MessengerBuilder {
	mb.clock = c
	return mb
}

// WithMiddleware wraps every listener invocation, first middleware outermost.
func (mb *MessengerBuilder) WithMiddleware(mw ...Middleware) *MessengerBuilder {
	mb.middlewares = append(mb.middlewares, mw...)
	return mb
}

func (mb *MessengerBuilder) WithObserver(obs ...Observer) *MessengerBuilder {
	for _, o := range obs {
		if o != nil {
			mb.observers = append(mb.observers, o)
		}
	}
	return mb
}

// WithObserverPool delivers observer events asynchronously. The built-in
// logging stays synchronous.
func (mb *MessengerBuilder) WithObserverPool(workers, bufferSize int) *MessengerBuilder {
	mb.poolWorkers = workers
	mb.poolBuffer = bufferSize
	return mb
}

// WithReentrancyGuard makes Broadcast Lock the envelope before dispatch and
// Release it after. A recursive broadcast of the same envelope is reported as
// a RecursiveLock event and still delivered. Off by default.
func (mb *MessengerBuilder) WithReentrancyGuard(on bool) *MessengerBuilder {
	mb.guard = on
	return mb
}

func (mb *MessengerBuilder) Build() (*Messenger, error) {
	if mb.poolWorkers < 0 || mb.poolBuffer < 0 {
		return nil, errors.New("xmsg: observer pool workers and buffer size must not be negative")
	}

	clk := mb.clock
	if clk == nil {
		clk = xclock.Default()
	}
	lg := mb.logger
	if lg == nil {
		lg = xlog.Default()
	}

	m := &Messenger{
		cfg:         mb.cfg,
		logger:      lg,
		clock:       clk,
		logging:     LoggingObserver{Logger: lg, Config: mb.cfg},
		middlewares: mb.middlewares,
		guard:       mb.guard,
		table:       make(map[MessageType]entry),
		permanent:   make(map[MessageType]struct{}),
		metrics:     &messengerMetrics{},
	}
	if mb.poolWorkers > 0 {
		m.observerPool = NewObserverPool(context.Background(), mb.poolWorkers, mb.poolBuffer)
	}
	for _, o := range mb.observers {
		m.AddObserver(o)
	}
	return m, nil
}

// New constructs a Messenger via Builder and returns a close func for convenience.
func New(init func(b *MessengerBuilder)) (*Messenger, func() error, error) {
	b := NewMessengerBuilder()
	if init != nil {
		init(b)
	}
	m, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	return m, m.Close, nil
}
