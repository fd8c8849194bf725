// Package secrets resolves credentials through opaque, releasable handles.
//
// A caller obtains a handle by logical name with Store.Get, reveals the
// plaintext with Store.Reveal, and releases the handle when done. A released
// handle can no longer be revealed. Plaintext values are never part of a
// handle's string form.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no secret exists under the requested name.
	ErrNotFound = errors.New("secret not found")
	// ErrReleased is returned when revealing a handle after Release.
	ErrReleased = errors.New("secret handle released")
	// ErrForeignHandle is returned when a handle is revealed by a store that did not issue it.
	ErrForeignHandle = errors.New("secret handle not issued by this store")
)

// Store is the secret resolver capability consumed by the router.
type Store interface {
	Get(ctx context.Context, name string) (*Handle, error)
	Reveal(ctx context.Context, h *Handle) (string, error)
}

// Handle is an opaque reference to one resolved secret.
type Handle struct {
	id    string
	name  string
	owner any

	mu       sync.Mutex
	value    string
	released bool
}

func newHandle(owner any, name, value string) *Handle {
	return &Handle{
		id:    uuid.New().String(),
		name:  name,
		owner: owner,
		value: value,
	}
}

// ID returns the handle's random identifier.
func (h *Handle) ID() string { return h.id }

// Name returns the logical secret name the handle was resolved from.
func (h *Handle) Name() string { return h.name }

// Release clears the secret value. It is safe to call more than once.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.value = ""
	h.released = true
}

// Released reports whether Release has been called. A nil handle holds no
// value and reports true.
func (h *Handle) Released() bool {
	if h == nil {
		return true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// String never includes the secret value.
func (h *Handle) String() string {
	return fmt.Sprintf("secret(%s#%s)", h.name, h.id)
}

// reveal returns the value if owner issued the handle and it is still live.
func (h *Handle) reveal(owner any) (string, error) {
	if h == nil {
		return "", fmt.Errorf("reveal: %w", ErrForeignHandle)
	}
	if h.owner != owner {
		return "", fmt.Errorf("reveal %s: %w", h.name, ErrForeignHandle)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return "", fmt.Errorf("reveal %s: %w", h.name, ErrReleased)
	}
	return h.value, nil
}

// EnvStore resolves secrets from process environment variables.
// The variable read is Prefix+name.
type EnvStore struct {
	Prefix string
	lookup func(string) (string, bool)
}

// NewEnvStore creates an environment-backed store.
func NewEnvStore(prefix string) *EnvStore {
	return &EnvStore{Prefix: prefix, lookup: os.LookupEnv}
}

// Get resolves name from the environment. Unset and empty variables are both ErrNotFound.
func (s *EnvStore) Get(ctx context.Context, name string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.lookup(s.Prefix + name)
	if !ok || v == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return newHandle(s, name, v), nil
}

// Reveal returns the plaintext held by h.
func (s *EnvStore) Reveal(ctx context.Context, h *Handle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return h.reveal(s)
}

// StaticStore resolves secrets from a fixed map, typically loaded from config.
type StaticStore struct {
	values map[string]string
}

// NewStaticStore copies values into a new store.
func NewStaticStore(values map[string]string) *StaticStore {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticStore{values: copied}
}

// Get resolves name from the map.
func (s *StaticStore) Get(ctx context.Context, name string) (*Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.values[name]
	if !ok || v == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return newHandle(s, name, v), nil
}

// Reveal returns the plaintext held by h.
func (s *StaticStore) Reveal(ctx context.Context, h *Handle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return h.reveal(s)
}

// NewStore returns the store for backend ("env" or "static").
func NewStore(backend, envPrefix string, values map[string]string) (Store, error) {
	switch backend {
	case "", "env":
		return NewEnvStore(envPrefix), nil
	case "static":
		return NewStaticStore(values), nil
	default:
		return nil, fmt.Errorf("unknown secrets backend %q", backend)
	}
}
