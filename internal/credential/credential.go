// Package credential keeps the registered account list behind a small
// Exists / Insert / Find surface.
//
// The list is read once from a key-value Backend when the store is opened
// and rewritten in full on every successful Insert. An Insert whose write
// fails is not applied in memory either, so the cached list and the
// durable copy never diverge.
package credential

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// DefaultKey is the record name the account list is stored under.
const DefaultKey = "registeredUsers"

// ErrAlreadyExists is returned by Insert when the email is taken.
var ErrAlreadyExists = errors.New("credential already exists")

// Record is one registered account. Password is opaque and compared by
// equality only.
type Record struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Backend is the durable key-value boundary. *store.Store satisfies it.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the credential list. Safe for concurrent use.
type Store struct {
	mu      sync.Mutex
	backend Backend
	key     string
	records []Record
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the record name (default DefaultKey).
func WithKey(key string) Option {
	return func(s *Store) {
		s.key = key
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Open loads the account list from b. A missing record is an empty list.
func Open(ctx context.Context, b Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: b,
		key:     DefaultKey,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := b.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.records); err != nil {
			return nil, fmt.Errorf("decode credentials: %w", err)
		}
	}

	s.logger.Debug("credentials loaded", "count", len(s.records))
	return s, nil
}

// Exists reports whether an account with this email is registered.
func (s *Store) Exists(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.indexLocked(email) >= 0
}

// Insert registers rec and persists the full list. Returns
// ErrAlreadyExists if the email is taken; duplicate calls always fail.
func (s *Store) Insert(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexLocked(rec.Email) >= 0 {
		return fmt.Errorf("insert %s: %w", rec.Email, ErrAlreadyExists)
	}

	next := append(slices.Clone(s.records), rec)
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.backend.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	s.records = next

	s.logger.Info("credential registered", "email", rec.Email, "count", len(next))
	return nil
}

// Find returns the record only if both email and password match exactly.
func (s *Store) Find(email, password string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(email)
	if i < 0 {
		return Record{}, false
	}
	rec := s.records[i]
	if subtle.ConstantTimeCompare([]byte(rec.Password), []byte(password)) != 1 {
		return Record{}, false
	}
	return rec, true
}

// Len returns the number of registered accounts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) indexLocked(email string) int {
	return slices.IndexFunc(s.records, func(r Record) bool { return r.Email == email })
}
