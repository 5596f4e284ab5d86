package testutil

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrInjected is returned by FailingBackend writes.
var ErrInjected = errors.New("injected write failure")

// MemoryBackend is a map-backed key-value store for tests.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type MemoryBackend struct {
	mu     sync.Mutex
	values map[string][]byte
	puts   int
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.values[key]
	return slices.Clone(v), ok, nil
}

// Put stores a copy of value.
func (b *MemoryBackend) Put(_ context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = slices.Clone(value)
	b.puts++
	return nil
}

// Set seeds a value without counting it as a Put.
func (b *MemoryBackend) Set(key string, value []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = slices.Clone(value)
}

// Puts returns how many Put calls succeeded.
func (b *MemoryBackend) Puts() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.puts
}

// FailingBackend wraps MemoryBackend and fails every Put while Fail is set.
type FailingBackend struct {
	*MemoryBackend

	mu   sync.Mutex
	fail bool
}

// NewFailingBackend creates a backend whose writes fail until SetFail(false).
func NewFailingBackend() *FailingBackend {
	return &FailingBackend{MemoryBackend: NewMemoryBackend(), fail: true}
}

// SetFail toggles write failures.
func (b *FailingBackend) SetFail(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail = fail
}

// Put returns ErrInjected while failing, otherwise delegates.
func (b *FailingBackend) Put(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	fail := b.fail
	b.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return b.MemoryBackend.Put(ctx, key, value)
}
