package authclient

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionObject is the client-side view of a decoded token. It carries
// whatever the unverified payload exposes; nothing here is authoritative
// beyond rendering and gating.
type SessionObject struct {
	UserID         string        `json:"user_id,omitempty"`
	Email          string        `json:"email,omitempty"`
	Issuer         string        `json:"issuer,omitempty"`
	IssuedAt       *time.Time    `json:"issued_at,omitempty"`
	ExpirationDate *time.Time    `json:"expiration_date,omitempty"`
	Role           UserRole      `json:"role,omitempty"`
	Claims         jwt.MapClaims `json:"claims,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

// IsExpired checks the exp claim against now. Sessions without an exp
// claim never report expired.
func (s *SessionObject) IsExpired(now time.Time) bool {
	if s.ExpirationDate == nil {
		return false
	}
	return s.ExpirationDate.Before(now)
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s email=%s iss=%s iat=%s role=%s",
		s.UserID,
		s.Email,
		s.Issuer,
		issuedAt,
		s.Role,
	)
}

// SessionFromToken decodes the token payload into a SessionObject. The
// token is not verified; this is display/gating material only.
func SessionFromToken(raw string) (*SessionObject, error) {
	claims, ok := ParseTokenClaims(raw)
	if !ok {
		return nil, ErrTokenInvalid
	}

	return sessionFromClaims(claims), nil
}

func sessionFromClaims(claims jwt.MapClaims) *SessionObject {
	session := &SessionObject{
		UserID: claimString(claims, "sub"),
		Email:  claimString(claims, "email"),
		Issuer: claimString(claims, "iss"),
		Role:   ResolveRole(claims),
		Claims: claims,
	}

	if uid := claimString(claims, "uid"); uid != "" {
		session.UserID = uid
	}

	if issuedAt, ok := claimTime(claims, "iat"); ok {
		session.IssuedAt = &issuedAt
	}

	if expiresAt, ok := claimTime(claims, "exp"); ok {
		session.ExpirationDate = &expiresAt
	}

	return session
}
