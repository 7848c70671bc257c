package redisjournal

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/trickstertwo/xlog"

	"github.com/trickstertwo/xmsg"
)

// Record is the journal form of an xmsg.Event.
type Record struct {
	ID            string        `json:"-"`
	Type          string        `json:"type"`
	MessageType   string        `json:"message_type"`
	MessageTypeID uint16        `json:"message_type_id"`
	Listener      string        `json:"listener,omitempty"`
	Description   string        `json:"description,omitempty"`
	Duration      time.Duration `json:"duration_ns,omitempty"`
	Error         string        `json:"error,omitempty"`
	At            time.Time     `json:"at"`
}

// Stats reports journal write counters.
type Stats struct {
	Written uint64
	Failed  uint64
}

// Journal is an xmsg.Observer appending events to a Redis stream. Writes are
// synchronous; pair it with MessengerBuilder.WithObserverPool to keep Redis
// latency off the broadcast path.
type Journal struct {
	cfg    Config
	client *redis.Client
	codec  xmsg.Codec
	logger *xlog.Logger
	owned  bool

	closeOnce sync.Once
	written   atomic.Uint64
	failed    atomic.Uint64
}

var _ xmsg.Observer = (*Journal)(nil)

// Option configures a Journal.
type Option func(*Journal)

// WithLogger reports failed writes through l.
func WithLogger(l *xlog.Logger) Option {
	return func(j *Journal) { j.logger = l }
}

// New connects to Redis and returns a Journal that owns the client.
func New(cfg Config, opts ...Option) (*Journal, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ropts := &redis.Options{
		Addr:       cfg.Addr,
		Username:   cfg.Username,
		Password:   cfg.Password,
		DB:         cfg.DB,
		MaxRetries: 3,
		PoolSize:   4,
	}
	if cfg.TLS {
		ropts.TLSConfig = &tls.Config{
			MinVersion:    tls.VersionTLS12,
			ServerName:    cfg.TLSServerName,
			Renegotiation: tls.RenegotiateNever,
		}
	}

	client := redis.NewClient(ropts)
	if err := ping(client); err != nil {
		_ = client.Close()
		return nil, err
	}
	j, err := NewWithClient(client, cfg, opts...)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	j.owned = true
	return j, nil
}

// NewWithClient journals through an existing client. Close leaves it open.
func NewWithClient(client *redis.Client, cfg Config, opts ...Option) (*Journal, error) {
	if client == nil {
		return nil, errors.New("redisjournal: client must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	codec, err := xmsg.NewCodec(cfg.Codec)
	if err != nil {
		return nil, err
	}
	j := &Journal{cfg: cfg, client: client, codec: codec}
	for _, o := range opts {
		if o != nil {
			o(j)
		}
	}
	return j, nil
}

// Use connects a Journal and attaches it to b as an observer.
func Use(b *xmsg.MessengerBuilder, cfg Config, opts ...Option) (*Journal, error) {
	j, err := New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("redisjournal.Use: %w", err)
	}
	b.WithObserver(j)
	return j, nil
}

// OnEvent appends e to the stream. Failures are counted and logged, never returned.
func (j *Journal) OnEvent(e xmsg.Event) {
	if err := j.Append(context.Background(), e); err != nil {
		j.failed.Add(1)
		if j.logger != nil {
			j.logger.Warn().Err(err).Str("stream", j.cfg.Stream).Msg("xmsg: journal write failed")
		}
		return
	}
	j.written.Add(1)
}

// Append writes e with the configured write timeout.
func (j *Journal) Append(ctx context.Context, e xmsg.Event) error {
	rec := Record{
		Type:          string(e.Type),
		MessageType:   e.MessageType.String(),
		MessageTypeID: uint16(e.MessageType),
		Listener:      e.Listener,
		Description:   e.Description,
		Duration:      e.Duration,
		At:            e.At,
	}
	if e.Err != nil {
		rec.Error = e.Err.Error()
	}
	data, err := j.codec.Marshal(rec)
	if err != nil {
		return fmt.Errorf("redisjournal: encode: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: j.cfg.Stream,
		ID:     "*",
		Values: map[string]any{
			fieldType:        rec.Type,
			fieldMessageType: rec.MessageType,
			fieldListener:    rec.Listener,
			fieldCodec:       j.codec.Name(),
			fieldRecord:      data,
		},
	}
	if j.cfg.MaxLenApprox > 0 {
		args.MaxLen = j.cfg.MaxLenApprox
		args.Approx = true
	}

	wctx, cancel := context.WithTimeout(ctx, j.cfg.WriteTimeout)
	defer cancel()
	return j.client.XAdd(wctx, args).Err()
}

// Recent returns up to n records, newest first.
func (j *Journal) Recent(ctx context.Context, n int64) ([]Record, error) {
	msgs, err := j.client.XRevRangeN(ctx, j.cfg.Stream, "+", "-", n).Result()
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(msgs))
	for _, m := range msgs {
		raw, ok := m.Values[fieldRecord].(string)
		if !ok {
			return nil, fmt.Errorf("redisjournal: entry %s has no record field", m.ID)
		}
		var rec Record
		if err := j.codec.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("redisjournal: decode entry %s: %w", m.ID, err)
		}
		rec.ID = m.ID
		out = append(out, rec)
	}
	return out, nil
}

func (j *Journal) Stats() Stats {
	return Stats{Written: j.written.Load(), Failed: j.failed.Load()}
}

// Close releases the client when the Journal created it.
func (j *Journal) Close() error {
	var err error
	j.closeOnce.Do(func() {
		if j.owned {
			err = j.client.Close()
		}
	})
	return err
}

func ping(c *redis.Client) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := c.Ping(ctx).Result()
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("redis ping timeout: %w", err)
		}
		return err
	}
	if strings.ToUpper(res) != "PONG" {
		return fmt.Errorf("unexpected redis ping result: %s", res)
	}
	return nil
}
