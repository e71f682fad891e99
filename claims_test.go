package authclient_test

import (
	"encoding/base64"
	"testing"

	authclient "github.com/goliatone/go-auth-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenClaims_MalformedInput(t *testing.T) {
	enc := base64.RawURLEncoding

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "no segments", token: "not-a-token"},
		{name: "two segments", token: "aGVhZGVy.cGF5bG9hZA"},
		{name: "four segments", token: "a.b.c.d"},
		{
			name:  "payload is not base64",
			token: "aGVhZGVy.!!!not-base64!!!.c2ln",
		},
		{
			name:  "payload is not JSON",
			token: "aGVhZGVy." + enc.EncodeToString([]byte("plain text")) + ".c2ln",
		},
		{
			name:  "payload is a JSON array",
			token: "aGVhZGVy." + enc.EncodeToString([]byte(`["a","b"]`)) + ".c2ln",
		},
		{
			name:  "payload is JSON null",
			token: "aGVhZGVy." + enc.EncodeToString([]byte(`null`)) + ".c2ln",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, ok := authclient.ParseTokenClaims(tt.token)
			assert.False(t, ok)
			assert.Nil(t, claims)
		})
	}
}

func TestParseTokenClaims_DecodesPayload(t *testing.T) {
	token := makeToken(t, map[string]any{
		"sub":   "user-1",
		"email": "a@b.com",
		"exp":   float64(1700000000),
	})

	claims, ok := authclient.ParseTokenClaims(token)
	require.True(t, ok)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "a@b.com", claims["email"])
	assert.Equal(t, float64(1700000000), claims["exp"])
}

func TestParseTokenClaims_MultibyteClaimValues(t *testing.T) {
	token := makeToken(t, map[string]any{
		"sub":  "user-1",
		"name": "José Müller 日本",
	})

	claims, ok := authclient.ParseTokenClaims(token)
	require.True(t, ok)
	assert.Equal(t, "José Müller 日本", claims["name"])
}

func TestParseTokenClaims_PaddedSegment(t *testing.T) {
	// issuers that emit standard base64 padding should still decode
	enc := base64.URLEncoding
	token := "aGVhZGVy." + enc.EncodeToString([]byte(`{"sub":"x"}`)) + ".c2ln"

	claims, ok := authclient.ParseTokenClaims(token)
	require.True(t, ok)
	assert.Equal(t, "x", claims["sub"])
}

func TestParseTokenClaims_EmptyObjectIsPresent(t *testing.T) {
	token := makeToken(t, map[string]any{})

	claims, ok := authclient.ParseTokenClaims(token)
	assert.True(t, ok)
	assert.Empty(t, claims)
}
