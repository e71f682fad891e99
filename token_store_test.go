package authclient_test

import (
	"context"
	"testing"

	authclient "github.com/goliatone/go-auth-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryTokenStore() (*authclient.DualTokenStore, *authclient.MemoryStorage, *authclient.MemoryStorage) {
	durable := authclient.NewMemoryStorage()
	session := authclient.NewMemoryStorage()
	return authclient.NewDualTokenStore(durable, session), durable, session
}

func TestDualTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, _, _ := newMemoryTokenStore()

	require.NoError(t, store.Store(ctx, "tok-123"))

	token, ok := store.Retrieve(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok-123", token)
}

func TestDualTokenStore_WritesBothTiers(t *testing.T) {
	ctx := context.Background()
	store, durable, session := newMemoryTokenStore()

	require.NoError(t, store.Store(ctx, "tok-123"))

	value, ok, err := durable.Get(ctx, authclient.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", value)

	value, ok, err = session.Get(ctx, authclient.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "tok-123", value)
}

func TestDualTokenStore_DurablePrecedence(t *testing.T) {
	ctx := context.Background()
	store, durable, session := newMemoryTokenStore()

	require.NoError(t, durable.Set(ctx, authclient.TokenKey, "from-durable"))
	require.NoError(t, session.Set(ctx, authclient.TokenKey, "from-session"))

	token, ok := store.Retrieve(ctx)
	require.True(t, ok)
	assert.Equal(t, "from-durable", token)
}

func TestDualTokenStore_SessionFallback(t *testing.T) {
	ctx := context.Background()
	store, _, session := newMemoryTokenStore()

	require.NoError(t, session.Set(ctx, authclient.TokenKey, "from-session"))

	token, ok := store.Retrieve(ctx)
	require.True(t, ok)
	assert.Equal(t, "from-session", token)
}

func TestDualTokenStore_AbsentWhenEmpty(t *testing.T) {
	store, _, _ := newMemoryTokenStore()

	token, ok := store.Retrieve(context.Background())
	assert.False(t, ok)
	assert.Empty(t, token)
}

func TestDualTokenStore_LegacyKeyMigration(t *testing.T) {
	ctx := context.Background()
	store, durable, _ := newMemoryTokenStore()

	require.NoError(t, durable.Set(ctx, "jwt", "legacy-token"))

	token, ok := store.Retrieve(ctx)
	require.True(t, ok)
	assert.Equal(t, "legacy-token", token)

	// value moved under the canonical key, legacy entry gone
	value, ok, err := durable.Get(ctx, authclient.TokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "legacy-token", value)

	_, ok, err = durable.Get(ctx, "jwt")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDualTokenStore_ClearRemovesEverything(t *testing.T) {
	ctx := context.Background()
	store, durable, session := newMemoryTokenStore()

	require.NoError(t, durable.Set(ctx, "jwt", "legacy"))
	require.NoError(t, store.Store(ctx, "tok-123"))

	require.NoError(t, store.Clear(ctx))

	_, ok := store.Retrieve(ctx)
	assert.False(t, ok)

	for _, tier := range []*authclient.MemoryStorage{durable, session} {
		_, ok, err := tier.Get(ctx, authclient.TokenKey)
		require.NoError(t, err)
		assert.False(t, ok)
	}

	_, ok, err := durable.Get(ctx, "jwt")
	require.NoError(t, err)
	assert.False(t, ok)
}
