package authclient

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

const (
	loginPath          = "/api/auth/login"
	registerPath       = "/api/auth/register"
	forgotPasswordPath = "/api/auth/forgot-password"
	profilePath        = "/user/profile"
	adminDashboardPath = "/admin/dashboard"
)

// Authenticator is the client-side surface for the auth flows.
type Authenticator interface {
	Login(ctx context.Context, payload LoginRequest) (*SessionObject, error)
	Register(ctx context.Context, payload RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (string, error)
	AdminDashboard(ctx context.Context) (string, error)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

// RegisterRequest payload
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules, including the client-side password
// policy. A policy failure blocks the request before it is sent; the
// backend remains the authority and re-validates.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(
			&r.Password,
			validation.Required,
			validation.By(ValidatePasswordPolicy(r.Email)),
		),
	)
}

// Auther orchestrates the auth flows against the backend API: it posts
// credentials, persists the returned token, and decorates protected
// requests with the bearer header.
type Auther struct {
	client *Client
	tokens TokenStore
	logger Logger

	mu       sync.Mutex
	inFlight map[string]bool
}

var _ Authenticator = (*Auther)(nil)

type AutherOption func(*Auther)

func WithAutherLogger(logger Logger) AutherOption {
	return func(a *Auther) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func NewAuther(client *Client, tokens TokenStore, opts ...AutherOption) *Auther {
	a := &Auther{
		client:   client,
		tokens:   tokens,
		logger:   defLogger{},
		inFlight: map[string]bool{},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Login posts credentials, stores the returned access token in both
// storage tiers, and returns the decoded session. The token is
// persisted before it is decoded: a backend that hands out an
// undecodable token still counts as a completed login, and the stored
// token surfaces later as the dashboard gate's "invalid token" state
// rather than failing the flow retroactively.
func (a *Auther) Login(ctx context.Context, payload LoginRequest) (*SessionObject, error) {
	if err := payload.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.CategoryValidation, "invalid login payload")
	}

	release, err := a.begin("login")
	if err != nil {
		return nil, err
	}
	defer release()

	res, err := a.client.PostJSON(ctx, loginPath, payload)
	if err != nil {
		a.logger.Error("login request failed: %v", err)
		return nil, err
	}

	token, _ := res.JSON["accessToken"].(string)
	if token == "" {
		a.logger.Error("login response missing accessToken")
		return nil, ErrMalformedResponse
	}

	if err := a.tokens.Store(ctx, token); err != nil {
		a.logger.Error("unable to persist token: %v", err)
		return nil, err
	}

	session, err := SessionFromToken(token)
	if err != nil {
		// token stored but not decodable; the dashboard gate will turn
		// this into its own user-facing state
		a.logger.Warn("stored token is not decodable: %v", err)
		return nil, err
	}

	a.logger.Info("login succeeded for user %s", session.GetUserID())
	return session, nil
}

// Register creates an account. The password policy runs client-side
// first and blocks the request entirely on failure.
func (a *Auther) Register(ctx context.Context, payload RegisterRequest) error {
	if err := payload.Validate(); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid registration payload")
	}

	release, err := a.begin("register")
	if err != nil {
		return err
	}
	defer release()

	if _, err := a.client.PostJSON(ctx, registerPath, payload); err != nil {
		a.logger.Error("registration request failed: %v", err)
		return err
	}

	return nil
}

// ForgotPassword requests a reset link. The email travels URL-encoded in
// the query string, matching the backend contract.
func (a *Auther) ForgotPassword(ctx context.Context, email string) error {
	if err := validation.Validate(email, validation.Required, is.Email); err != nil {
		return errors.Wrap(err, errors.CategoryValidation, "invalid email")
	}

	release, err := a.begin("forgot-password")
	if err != nil {
		return err
	}
	defer release()

	path := forgotPasswordPath + "?email=" + url.QueryEscape(email)
	if _, err := a.client.Do(ctx, path, RequestOptions{Method: http.MethodPost}); err != nil {
		a.logger.Error("forgot password request failed: %v", err)
		return err
	}

	return nil
}

// Logout clears the token from every storage tier.
func (a *Auther) Logout(ctx context.Context) error {
	return a.tokens.Clear(ctx)
}

// Session decodes the currently stored token, if any.
func (a *Auther) Session(ctx context.Context) (*SessionObject, error) {
	token, ok := a.tokens.Retrieve(ctx)
	if !ok {
		return nil, ErrNoToken
	}
	return SessionFromToken(token)
}

// Profile fetches the protected user profile and returns a printable
// rendition of the payload.
func (a *Auther) Profile(ctx context.Context) (string, error) {
	return a.protectedGet(ctx, profilePath)
}

// AdminDashboard fetches the admin-only dashboard payload. A 403 means
// the backend rejected the role regardless of what the client derived.
func (a *Auther) AdminDashboard(ctx context.Context) (string, error) {
	return a.protectedGet(ctx, adminDashboardPath)
}

func (a *Auther) protectedGet(ctx context.Context, path string) (string, error) {
	token, ok := a.tokens.Retrieve(ctx)
	if !ok {
		return "", ErrNoToken
	}

	res, err := a.client.Get(ctx, path, map[string]string{
		"Authorization": "Bearer " + token,
		"Content-Type":  "application/json",
	})
	if err != nil {
		return "", err
	}

	if res.IsJSON {
		return print.MaybePrettyJSON(res.JSON), nil
	}
	return res.Text, nil
}

// begin marks a flow as in flight so a duplicate submission of the same
// logical request fails fast instead of double-posting.
func (a *Auther) begin(flow string) (func(), error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.inFlight[flow] {
		clone := ErrRequestInFlight.Clone()
		if clone == nil {
			return nil, ErrRequestInFlight
		}
		return nil, clone.WithMetadata(map[string]any{"flow": flow})
	}

	a.inFlight[flow] = true
	return func() {
		a.mu.Lock()
		delete(a.inFlight, flow)
		a.mu.Unlock()
	}, nil
}
