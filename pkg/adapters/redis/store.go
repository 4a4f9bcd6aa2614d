// Package redis shares robot state through Redis: vision tables as hashes,
// scheduler snapshots as JSON values, and a lock so only one robot process
// owns a key prefix.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aretw0/cmdbot/pkg/domain"
	"github.com/aretw0/cmdbot/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultHistory is the number of snapshots kept in the history list.
const DefaultHistory = 50

// Store implements ports.TelemetrySink and hands out ports.NumberTable
// views on Redis hashes.
type Store struct {
	client  *backend.Client
	prefix  string
	ttl     time.Duration
	history int64
}

var _ ports.TelemetrySink = (*Store)(nil)

type Option func(*Store)

// WithTTL sets the expiration of the latest snapshot.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// WithHistory sets how many snapshots the history list keeps. Zero disables
// the history.
func WithHistory(n int) Option {
	return func(s *Store) {
		s.history = int64(n)
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client:  client,
		prefix:  "cmdbot:",
		ttl:     0, // No expiration by default
		history: DefaultHistory,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) snapshotKey() string { return s.prefix + "snapshot" }
func (s *Store) historyKey() string  { return s.prefix + "history" }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to reach redis: %w", err)
	}
	return nil
}

// Publish stores snap as the latest snapshot and appends it to the history.
func (s *Store) Publish(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.snapshotKey(), data, s.ttl)
	if s.history > 0 {
		pipe.LPush(ctx, s.historyKey(), data)
		pipe.LTrim(ctx, s.historyKey(), 0, s.history-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// ErrNoSnapshot is returned when nothing has been published yet.
var ErrNoSnapshot = errors.New("no snapshot published")

// Latest returns the last published snapshot.
func (s *Store) Latest(ctx context.Context) (domain.Snapshot, error) {
	val, err := s.client.Get(ctx, s.snapshotKey()).Result()
	if err != nil {
		if err == backend.Nil {
			return domain.Snapshot{}, ErrNoSnapshot
		}
		return domain.Snapshot{}, fmt.Errorf("failed to get snapshot: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snap, nil
}

// History returns up to n snapshots, newest first.
func (s *Store) History(ctx context.Context, n int) ([]domain.Snapshot, error) {
	if n <= 0 {
		return nil, nil
	}
	vals, err := s.client.LRange(ctx, s.historyKey(), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	out := make([]domain.Snapshot, 0, len(vals))
	for _, v := range vals {
		var snap domain.Snapshot
		if err := json.Unmarshal([]byte(v), &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
		}
		out = append(out, snap)
	}
	return out, nil
}

// Table returns a NumberTable stored in the hash <prefix>table:<name>.
func (s *Store) Table(name string) *Table {
	return &Table{client: s.client, name: name, key: s.prefix + "table:" + name}
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}

// Table implements ports.NumberTable on a Redis hash.
type Table struct {
	client *backend.Client
	name   string
	key    string
}

var _ ports.NumberTable = (*Table)(nil)

func (t *Table) Name() string { return t.name }

func (t *Table) SetNumber(ctx context.Context, key string, value float64) error {
	if err := t.client.HSet(ctx, t.key, key, strconv.FormatFloat(value, 'g', -1, 64)).Err(); err != nil {
		return fmt.Errorf("failed to set %s.%s: %w", t.name, key, err)
	}
	return nil
}

func (t *Table) Number(ctx context.Context, key string) (float64, error) {
	val, err := t.client.HGet(ctx, t.key, key).Result()
	if err != nil {
		if err == backend.Nil {
			return 0, fmt.Errorf("%s.%s: %w", t.name, key, domain.ErrEntryNotFound)
		}
		return 0, fmt.Errorf("failed to get %s.%s: %w", t.name, key, err)
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("%s.%s is not a number: %w", t.name, key, err)
	}
	return f, nil
}
