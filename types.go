package authclient

import (
	"context"
	"fmt"
	"net/http"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Doer abstracts the HTTP transport so flows can run without a network.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// KeyValueStore is the small capability surface the client needs from a
// persistence tier: string keys, string values, explicit absence.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// TokenStore owns the persisted representation of the current bearer
// token. Retrieve reports absence rather than failing; read errors are
// logged and treated as a missing token.
type TokenStore interface {
	Store(ctx context.Context, token string) error
	Retrieve(ctx context.Context) (string, bool)
	Clear(ctx context.Context) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTHCLIENT "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTHCLIENT "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
