package authclient

import (
	"strings"

	"github.com/goliatone/go-errors"
)

const (
	TextCodeTokenNotFound    = "TOKEN_NOT_FOUND"
	TextCodeTokenInvalid     = "TOKEN_INVALID"
	TextCodeTokenExpired     = "TOKEN_EXPIRED"
	TextCodeRoleUnknown      = "ROLE_UNKNOWN"
	TextCodeUnauthenticated  = "UNAUTHENTICATED"
	TextCodeForbidden        = "FORBIDDEN"
	TextCodeRequestInFlight  = "REQUEST_IN_FLIGHT"
	TextCodeMalformedPayload = "MALFORMED_PAYLOAD"
)

// ErrNoToken is returned when neither storage tier holds a token.
var ErrNoToken = errors.New("no token found", errors.CategoryAuth).
	WithTextCode(TextCodeTokenNotFound).
	WithCode(errors.CodeUnauthorized)

// ErrTokenInvalid is returned when the token payload cannot be decoded.
var ErrTokenInvalid = errors.New("invalid token", errors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned when the exp claim is in the past.
var ErrTokenExpired = errors.New("token expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrRoleUnknown is returned when no role can be derived from the claims.
var ErrRoleUnknown = errors.New("unable to determine role", errors.CategoryAuthz).
	WithTextCode(TextCodeRoleUnknown).
	WithCode(errors.CodeForbidden)

// ErrRequestInFlight is returned when a flow is re-entered while a prior
// request for the same flow is still pending.
var ErrRequestInFlight = errors.New("request already in flight", errors.CategoryConflict).
	WithTextCode(TextCodeRequestInFlight).
	WithCode(errors.CodeConflict)

// ErrMalformedResponse is returned when a success body is missing the
// fields a flow needs, e.g. a login response without accessToken.
var ErrMalformedResponse = errors.New("malformed response payload", errors.CategoryBadInput).
	WithTextCode(TextCodeMalformedPayload).
	WithCode(errors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.TextCode == TextCodeTokenExpired {
		return true
	}

	return strings.Contains(err.Error(), "token expired") ||
		strings.Contains(err.Error(), "token is expired")
}

// IsUnauthenticatedError reports whether err carries a 401 status.
func IsUnauthenticatedError(err error) bool {
	return errorHasCode(err, errors.CodeUnauthorized)
}

// IsForbiddenError reports whether err carries a 403 status.
func IsForbiddenError(err error) bool {
	return errorHasCode(err, errors.CodeForbidden)
}

func errorHasCode(err error, code int) bool {
	if err == nil {
		return false
	}
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		return false
	}
	return richErr.Code == code
}

// statusCategory maps an HTTP failure status to the error category the
// rest of the library keys off.
func statusCategory(status int) errors.Category {
	switch {
	case status == 401:
		return errors.CategoryAuth
	case status == 403:
		return errors.CategoryAuthz
	case status == 404:
		return errors.CategoryNotFound
	case status == 409:
		return errors.CategoryConflict
	case status == 429:
		return errors.CategoryRateLimit
	case status >= 500:
		return errors.CategoryInternal
	default:
		return errors.CategoryBadInput
	}
}
