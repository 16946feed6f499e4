package identity

import (
	"context"
	"log"
	"sync"
)

// MappingStore caches externalID -> principal mappings. The cache is an
// optimization only: recomputation always yields the same principal, so a
// racing last-write-wins save is harmless.
type MappingStore interface {
	Lookup(ctx context.Context, externalID string) (principal string, found bool, err error)
	Save(ctx context.Context, externalID, principal string) error
}

// AuthClient completes the identity-provider handshake for a derived
// identity. The principal is not usable for writes until this succeeds.
type AuthClient interface {
	Establish(ctx context.Context, id *Identity) error
}

// Bridge maps external identities onto cached, handshake-confirmed principals.
type Bridge struct {
	cache MappingStore
	auth  AuthClient
}

// NewBridge creates a Bridge over the given cache and handshake client.
func NewBridge(cache MappingStore, auth AuthClient) *Bridge {
	return &Bridge{cache: cache, auth: auth}
}

// Login resolves the principal for an external user. A cached mapping is
// returned as-is; otherwise the identity is derived, the provider handshake
// completed, and the mapping persisted. Cache failures degrade to plain
// derivation rather than failing the login.
func (b *Bridge) Login(ctx context.Context, externalID, email string) (string, error) {
	if principal, found, err := b.cache.Lookup(ctx, externalID); err != nil {
		log.Printf("[identity] mapping lookup failed for %s: %v", externalID, err)
	} else if found {
		return principal, nil
	}

	id, err := Derive(externalID, email)
	if err != nil {
		return "", err
	}

	if err := b.auth.Establish(ctx, id); err != nil {
		return "", err
	}

	if err := b.cache.Save(ctx, externalID, id.Principal); err != nil {
		// The mapping is recomputable; a failed cache write is not fatal.
		log.Printf("[identity] failed to save mapping for %s: %v", externalID, err)
	}

	return id.Principal, nil
}

// NoAuth accepts every derived identity without an external handshake.
// Used in local development when no provider is configured.
type NoAuth struct{}

// Establish is a no-op.
func (NoAuth) Establish(context.Context, *Identity) error { return nil }

// MemStore is an in-process MappingStore. Used in tests and when no database
// is configured.
type MemStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemStore creates an empty in-memory mapping store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string]string)}
}

// Lookup returns the cached principal for an external id, if any.
func (s *MemStore) Lookup(_ context.Context, externalID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	principal, found := s.m[externalID]
	return principal, found, nil
}

// Save stores a mapping. First write wins; a concurrent writer would be
// storing the same value anyway.
func (s *MemStore) Save(_ context.Context, externalID, principal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.m[externalID]; !exists {
		s.m[externalID] = principal
	}
	return nil
}
