package authclient

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// payload segments may arrive padded or unpadded depending on the issuer
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// ParseTokenClaims decodes the payload segment of a bearer token into a
// claims map without verifying the signature. The token is untrusted
// input: any failure at any stage, missing segments, bad base64,
// invalid JSON, yields (nil, false) and never an error or panic.
func ParseTokenClaims(token string) (jwt.MapClaims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, false
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, false
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, false
	}

	// a literal JSON null decodes into a nil map; an empty object is
	// still "claims present" with nothing recognizable in it
	if claims == nil {
		return nil, false
	}

	return claims, true
}

// claimString returns a string claim, tolerating absence and non-string
// values.
func claimString(claims jwt.MapClaims, key string) string {
	if claims == nil {
		return ""
	}
	if value, ok := claims[key].(string); ok {
		return value
	}
	return ""
}

// claimTime extracts a numeric date claim (exp, iat) when present and
// well-formed.
func claimTime(claims jwt.MapClaims, key string) (time.Time, bool) {
	if claims == nil {
		return time.Time{}, false
	}

	raw, ok := claims[key]
	if !ok {
		return time.Time{}, false
	}

	switch v := raw.(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case json.Number:
		seconds, err := v.Float64()
		if err != nil {
			return time.Time{}, false
		}
		return time.Unix(int64(seconds), 0), true
	default:
		return time.Time{}, false
	}
}
