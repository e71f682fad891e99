package authclient_test

import (
	"testing"
	"time"

	authclient "github.com/goliatone/go-auth-client"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFromToken(t *testing.T) {
	issued := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	expires := issued.Add(24 * time.Hour)

	token := makeToken(t, map[string]any{
		"sub":   "a3f6c988-6f3e-4f8b-9c3a-2b1a9c0d4e5f",
		"email": "a@b.com",
		"iss":   "auth-template",
		"iat":   float64(issued.Unix()),
		"exp":   float64(expires.Unix()),
		"roles": []string{"ROLE_ADMIN"},
	})

	session, err := authclient.SessionFromToken(token)
	require.NoError(t, err)

	assert.Equal(t, "a3f6c988-6f3e-4f8b-9c3a-2b1a9c0d4e5f", session.GetUserID())
	assert.Equal(t, "a@b.com", session.GetEmail())
	assert.Equal(t, "auth-template", session.GetIssuer())
	assert.Equal(t, authclient.RoleAdmin, session.Role)

	require.NotNil(t, session.GetIssuedAt())
	assert.True(t, session.GetIssuedAt().Equal(issued))
	require.NotNil(t, session.ExpirationDate)
	assert.True(t, session.ExpirationDate.Equal(expires))

	id, err := session.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("a3f6c988-6f3e-4f8b-9c3a-2b1a9c0d4e5f"), id)
}

func TestSessionFromToken_UndecodableToken(t *testing.T) {
	session, err := authclient.SessionFromToken("not.a.token")
	assert.Nil(t, session)
	assert.Error(t, err)
}

func TestSessionFromToken_UIDOverridesSubject(t *testing.T) {
	token := makeToken(t, map[string]any{"sub": "subject", "uid": "uid-1"})

	session, err := authclient.SessionFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", session.GetUserID())
}

func TestSessionObject_IsExpired(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expired in the past", func(t *testing.T) {
		past := now.Add(-time.Minute)
		session := &authclient.SessionObject{ExpirationDate: &past}
		assert.True(t, session.IsExpired(now))
	})

	t.Run("valid in the future", func(t *testing.T) {
		future := now.Add(time.Hour)
		session := &authclient.SessionObject{ExpirationDate: &future}
		assert.False(t, session.IsExpired(now))
	})

	t.Run("no exp claim never expires", func(t *testing.T) {
		session := &authclient.SessionObject{}
		assert.False(t, session.IsExpired(now))
	})
}
