package authclient

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GateState is the rendering state a dashboard evaluation lands in.
type GateState string

const (
	GateLoading    GateState = "loading"
	GateError      GateState = "error"
	GateAuthorized GateState = "authorized"
)

// GateResult is the terminal outcome of one evaluation. Error and
// Authorized are both final for a given evaluation; recovery requires a
// fresh login and a new evaluation.
type GateResult struct {
	State     GateState
	Message   string
	Role      UserRole
	ShowAdmin bool
	Claims    jwt.MapClaims
}

func (r GateResult) Authorized() bool {
	return r.State == GateAuthorized
}

// DashboardGate decides what a role-gated view may render. It owns no
// data: the result is a pure function of the stored token, its claims,
// and the injected clock.
type DashboardGate struct {
	store  TokenStore
	now    func() time.Time
	logger Logger
}

type GateOption func(*DashboardGate)

// WithGateClock injects a custom clock (useful for tests).
func WithGateClock(clock func() time.Time) GateOption {
	return func(g *DashboardGate) {
		if clock != nil {
			g.now = clock
		}
	}
}

func WithGateLogger(logger Logger) GateOption {
	return func(g *DashboardGate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func NewDashboardGate(store TokenStore, opts ...GateOption) *DashboardGate {
	g := &DashboardGate{
		store:  store,
		now:    time.Now,
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Evaluate runs the token presence, decode, expiry, and role pipeline.
// Each check failing short-circuits into a terminal Error result with a
// user-facing message; decode failures are absorbed here and never
// surface as raw errors.
func (g *DashboardGate) Evaluate(ctx context.Context) GateResult {
	token, ok := g.store.Retrieve(ctx)
	if !ok {
		return g.fail(ErrNoToken.Message)
	}

	claims, ok := ParseTokenClaims(token)
	if !ok {
		return g.fail(ErrTokenInvalid.Message)
	}

	if expiresAt, ok := claimTime(claims, "exp"); ok {
		if expiresAt.Before(g.now()) {
			return g.fail(ErrTokenExpired.Message)
		}
	}

	role := ResolveRole(claims)
	if role == RoleUnknown {
		return g.fail(ErrRoleUnknown.Message)
	}

	g.logger.Debug("dashboard authorized with role %s", role)

	return GateResult{
		State:     GateAuthorized,
		Role:      role,
		ShowAdmin: role == RoleAdmin,
		Claims:    claims,
	}
}

func (g *DashboardGate) fail(message string) GateResult {
	g.logger.Info("dashboard gate rejected: %s", message)
	return GateResult{State: GateError, Message: message}
}
