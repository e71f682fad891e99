// Package authclient is a headless client for JWT authenticated HTTP
// backends: login, registration, password reset, and role-aware gating
// of protected views.
//
// Tokens:
//   - Tokens are treated as opaque bearer credentials. The client never
//     verifies signatures; ParseTokenClaims decodes the payload segment
//     for display and UI gating only, and the backend stays the
//     authority on every protected endpoint.
//   - TokenStore persists the current token across two tiers, a durable
//     store (bun/sqlite) and a session-scoped store (memory). Retrieval
//     prefers the durable tier; Clear wipes both so logout is complete
//     regardless of which flow stored the token.
//
// Gating:
//   - ResolveRole derives a coarse ADMIN/USER role from whatever claim
//     shape the backend emits (roles, authorities, scope, role, sub).
//   - DashboardGate runs the presence/decode/expiry/role pipeline and
//     reports a terminal Authorized or Error result for the caller to
//     render.
//
// Errors:
//   - All HTTP failures normalize into go-errors rich errors carrying
//     the response status in Code, so callers can branch on 401 vs 403
//     without string matching.
package authclient
