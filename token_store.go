package authclient

import "context"

const (
	// TokenKey is the canonical storage key for the bearer token.
	TokenKey = "jwt_token"
	// legacyTokenKey was used by an older login flow; retrieval still
	// honors it and migrates the value forward.
	legacyTokenKey = "jwt"
)

// DualTokenStore persists the bearer token across a durable and a
// session-scoped tier. Retrieval prefers the durable tier; writes go to
// both so whichever flow stored the token, logout clears everything.
type DualTokenStore struct {
	durable KeyValueStore
	session KeyValueStore
	logger  Logger
}

var _ TokenStore = (*DualTokenStore)(nil)

type TokenStoreOption func(*DualTokenStore)

func WithTokenStoreLogger(logger Logger) TokenStoreOption {
	return func(s *DualTokenStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewDualTokenStore(durable, session KeyValueStore, opts ...TokenStoreOption) *DualTokenStore {
	s := &DualTokenStore{
		durable: durable,
		session: session,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Store writes the token to both tiers. A failure in either tier is
// returned, but the other tier is still attempted first.
func (s *DualTokenStore) Store(ctx context.Context, token string) error {
	sessionErr := s.session.Set(ctx, TokenKey, token)
	if err := s.durable.Set(ctx, TokenKey, token); err != nil {
		return err
	}
	return sessionErr
}

// Retrieve checks the durable tier first, then the session tier,
// returning the first token present. Read errors are logged and treated
// as absence so a broken tier degrades to "logged out" instead of
// failing the caller.
func (s *DualTokenStore) Retrieve(ctx context.Context) (string, bool) {
	if token, ok := s.get(ctx, s.durable, TokenKey); ok {
		return token, true
	}

	if token, ok := s.get(ctx, s.durable, legacyTokenKey); ok {
		s.migrateLegacy(ctx, token)
		return token, true
	}

	if token, ok := s.get(ctx, s.session, TokenKey); ok {
		return token, true
	}

	return "", false
}

// Clear removes the token from both tiers, including the legacy durable
// key, so logout is complete regardless of which path stored it.
func (s *DualTokenStore) Clear(ctx context.Context) error {
	var firstErr error

	for _, target := range []struct {
		store KeyValueStore
		key   string
	}{
		{s.durable, TokenKey},
		{s.durable, legacyTokenKey},
		{s.session, TokenKey},
	} {
		if err := target.store.Remove(ctx, target.key); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

func (s *DualTokenStore) get(ctx context.Context, store KeyValueStore, key string) (string, bool) {
	value, ok, err := store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("token store read error for %s: %v", key, err)
		return "", false
	}
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (s *DualTokenStore) migrateLegacy(ctx context.Context, token string) {
	if err := s.durable.Set(ctx, TokenKey, token); err != nil {
		s.logger.Warn("legacy token migration write failed: %v", err)
		return
	}
	if err := s.durable.Remove(ctx, legacyTokenKey); err != nil {
		s.logger.Warn("legacy token cleanup failed: %v", err)
	}
}
