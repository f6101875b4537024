package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	backend "github.com/redis/go-redis/v9"

	"github.com/sheikhrachel/go-organism/model"
)

// Generator builds generation sequences; *model.Stepper satisfies it
type Generator interface {
	Generate(initial *model.Grid, count int) (model.Sequence, error)
}

// Memo caches generation sequences in Redis, keyed by grid hash and count.
// Sequences are deterministic, so a hit is always safe to reuse.
type Memo struct {
	client *backend.Client
	gen    Generator
	logger *slog.Logger
	prefix string
	ttl    time.Duration
}

type Option func(*Memo)

// WithTTL sets the expiration for cached sequences.
func WithTTL(ttl time.Duration) Option {
	return func(m *Memo) {
		m.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(m *Memo) {
		m.prefix = prefix
	}
}

// New creates a memo connected to the Redis server at address
func New(address string, gen Generator, logger *slog.Logger, opts ...Option) *Memo {
	return NewFromClient(backend.NewClient(&backend.Options{Addr: address}), gen, logger, opts...)
}

// NewFromClient creates a memo from an existing client
func NewFromClient(client *backend.Client, gen Generator, logger *slog.Logger, opts ...Option) *Memo {
	m := &Memo{
		client: client,
		gen:    gen,
		logger: logger,
		prefix: "organism:sequence:",
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memo) key(initial *model.Grid, count int) string {
	return fmt.Sprintf("%s%s:%d", m.prefix, initial.GetGridHash(), count)
}

// Generate returns the cached sequence for (initial, count) or computes and
// stores it. Redis failures are logged and never fail the call.
func (m *Memo) Generate(ctx context.Context, initial *model.Grid, count int) (model.Sequence, error) {
	if initial == nil {
		return nil, errors.Wrap(model.ErrInvalidGrid, "[Memo.Generate] initial grid is nil")
	}
	key := m.key(initial, count)

	if seq, ok := m.load(ctx, key, initial, count); ok {
		m.logger.Debug("sequence cache hit", "key", key)
		return seq, nil
	}

	seq, err := m.gen.Generate(initial, count)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(seq)
	if err != nil {
		return nil, errors.Wrap(err, "[Memo.Generate] failed to marshal sequence")
	}
	if err := m.client.Set(ctx, key, data, m.ttl).Err(); err != nil {
		m.logger.Warn("failed to store sequence", "key", key, "error", err)
	}
	return seq, nil
}

func (m *Memo) load(ctx context.Context, key string, initial *model.Grid, count int) (model.Sequence, bool) {
	val, err := m.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, backend.Nil) {
			m.logger.Warn("failed to read sequence cache", "key", key, "error", err)
		}
		return nil, false
	}

	var seq model.Sequence
	if err := json.Unmarshal(val, &seq); err != nil {
		m.logger.Warn("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false
	}
	// Guard against hash collisions and stale shapes
	if len(seq) == 0 || seq.ExpectLen(count+1) != nil || !seq[0].Equal(initial) {
		m.logger.Warn("discarding mismatched cache entry", "key", key)
		return nil, false
	}
	seq[0] = initial
	return seq, true
}

// Close closes the redis client.
func (m *Memo) Close() error {
	return m.client.Close()
}
