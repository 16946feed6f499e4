package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAuth is an AuthClient that counts handshakes and can fail.
type countingAuth struct {
	calls int
	err   error
}

func (a *countingAuth) Establish(context.Context, *Identity) error {
	a.calls++
	return a.err
}

func TestBridge_FirstLoginDerivesAndCaches(t *testing.T) {
	cache := NewMemStore()
	auth := &countingAuth{}
	bridge := NewBridge(cache, auth)

	principal, err := bridge.Login(context.Background(), "linkedin-user-42", "jane@example.com")
	require.NoError(t, err)
	assert.True(t, ValidPrincipal(principal))
	assert.Equal(t, 1, auth.calls)

	cached, found, err := cache.Lookup(context.Background(), "linkedin-user-42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, principal, cached)
}

func TestBridge_CacheHitSkipsDerivationAndHandshake(t *testing.T) {
	cache := NewMemStore()
	require.NoError(t, cache.Save(context.Background(), "linkedin-user-42", "stored-principal"))
	auth := &countingAuth{}
	bridge := NewBridge(cache, auth)

	principal, err := bridge.Login(context.Background(), "linkedin-user-42", "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "stored-principal", principal)
	assert.Equal(t, 0, auth.calls)
}

func TestBridge_CacheIsOnlyAnOptimization(t *testing.T) {
	auth := &countingAuth{}

	// Two logins with independent caches derive the same principal.
	first, err := NewBridge(NewMemStore(), auth).Login(context.Background(), "linkedin-user-42", "jane@example.com")
	require.NoError(t, err)

	second, err := NewBridge(NewMemStore(), auth).Login(context.Background(), "linkedin-user-42", "jane@example.com")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBridge_HandshakeFailureIsNotDerivationFailure(t *testing.T) {
	auth := &countingAuth{err: &HandshakeError{Principal: "p", Message: "provider rejected session"}}
	bridge := NewBridge(NewMemStore(), auth)

	_, err := bridge.Login(context.Background(), "linkedin-user-42", "jane@example.com")

	var handshakeErr *HandshakeError
	require.ErrorAs(t, err, &handshakeErr)

	var derivErr *DerivationError
	assert.False(t, errors.As(err, &derivErr))
}

func TestBridge_HandshakeFailureDoesNotCache(t *testing.T) {
	cache := NewMemStore()
	auth := &countingAuth{err: &HandshakeError{Principal: "p", Message: "down"}}
	bridge := NewBridge(cache, auth)

	_, err := bridge.Login(context.Background(), "linkedin-user-42", "jane@example.com")
	require.Error(t, err)

	_, found, err := cache.Lookup(context.Background(), "linkedin-user-42")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBridge_DerivationFailureSkipsHandshake(t *testing.T) {
	auth := &countingAuth{}
	bridge := NewBridge(NewMemStore(), auth)

	_, err := bridge.Login(context.Background(), "", "jane@example.com")

	var derivErr *DerivationError
	require.ErrorAs(t, err, &derivErr)
	assert.Equal(t, 0, auth.calls)
}

func TestMemStore_ConcurrentSameKeyIsIdempotent(t *testing.T) {
	store := NewMemStore()
	id, err := Derive("linkedin-user-42", "jane@example.com")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Save(context.Background(), "linkedin-user-42", id.Principal)
		}()
	}
	wg.Wait()

	principal, found, err := store.Lookup(context.Background(), "linkedin-user-42")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, id.Principal, principal)
}

func TestProviderClient_Establish(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	id, err := Derive("linkedin-user-42", "jane@example.com")
	require.NoError(t, err)

	client := NewProviderClient(srv.URL)
	assert.NoError(t, client.Establish(context.Background(), id))
}

func TestProviderClient_EstablishRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	id, err := Derive("linkedin-user-42", "jane@example.com")
	require.NoError(t, err)

	client := NewProviderClient(srv.URL)
	err = client.Establish(context.Background(), id)

	var handshakeErr *HandshakeError
	require.ErrorAs(t, err, &handshakeErr)
	assert.Equal(t, id.Principal, handshakeErr.Principal)
}
