package authclient_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
)

// makeToken assembles an unsigned three-segment token with the given
// payload claims. The signature segment is garbage on purpose; nothing
// client-side verifies it.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header, err := json.Marshal(map[string]any{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		t.Fatalf("marshal header: %v", err)
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}

	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + ".c2ln"
}

// tokenStoreStub satisfies TokenStore with fixed behavior.
type tokenStoreStub struct {
	token    string
	present  bool
	stored   []string
	clearErr error
	cleared  int
}

func (s *tokenStoreStub) Store(_ context.Context, token string) error {
	s.stored = append(s.stored, token)
	return nil
}

func (s *tokenStoreStub) Retrieve(_ context.Context) (string, bool) {
	return s.token, s.present
}

func (s *tokenStoreStub) Clear(_ context.Context) error {
	s.cleared++
	return s.clearErr
}
