package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// RequestOptions configures a single request. Body is sent as-is; the
// caller serializes it.
type RequestOptions struct {
	Method  string
	Headers map[string]string
	Body    []byte
}

// Response is the normalized success body. JSON is populated when the
// content type says JSON and the body decodes; otherwise Text carries
// the raw payload. A malformed JSON body leaves both empty rather than
// surfacing a parse error.
type Response struct {
	StatusCode int
	JSON       map[string]any
	Text       string
	IsJSON     bool
}

// Client performs requests against a configured base origin and
// normalizes success and failure bodies into a single contract. It does
// not retry and does not cache.
type Client struct {
	baseURL string
	http    Doer
	logger  Logger
}

type ClientOption func(*Client)

func WithHTTPClient(doer Doer) ClientOption {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

func WithClientLogger(logger Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a Client from an explicit Config.
func NewClient(cfg *Config, opts ...ClientOption) *Client {
	httpClient := &http.Client{}
	if cfg != nil && cfg.HTTPTimeout > 0 {
		httpClient.Timeout = cfg.HTTPTimeout
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.GetBaseURL(), "/"),
		http:    httpClient,
		logger:  defLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the configured base origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do resolves path against the base origin, performs the request, and
// returns the normalized body. Non-2xx responses come back as a rich
// error with the message extracted per the body contract and the HTTP
// status attached as the error code.
func (c *Client) Do(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	url := c.resolveURL(path)

	var body io.Reader
	if len(opts.Body) > 0 {
		body = bytes.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to build request").
			WithMetadata(map[string]any{"url": url})
	}

	for name, value := range opts.Headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	c.logger.Debug("request %s %s", method, url)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryOperation, "request failed").
			WithMetadata(map[string]any{"url": url, "method": method})
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		raw = nil
	}

	isJSON := strings.Contains(res.Header.Get("Content-Type"), "application/json")

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, c.failure(res.StatusCode, raw, isJSON)
	}

	response := &Response{StatusCode: res.StatusCode, IsJSON: isJSON}
	if isJSON {
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			response.JSON = decoded
		}
		// a malformed JSON success body degrades to an empty body
		return response, nil
	}

	response.Text = string(raw)
	return response, nil
}

// Get is shorthand for a GET request with optional headers.
func (c *Client) Get(ctx context.Context, path string, headers map[string]string) (*Response, error) {
	return c.Do(ctx, path, RequestOptions{Method: http.MethodGet, Headers: headers})
}

// PostJSON serializes payload and posts it with a JSON content type.
func (c *Client) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryBadInput, "unable to serialize payload")
	}

	return c.Do(ctx, path, RequestOptions{
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
}

func (c *Client) resolveURL(path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// failure builds the single error contract for non-2xx responses.
// Message priority: JSON body message/error field, then a non-empty raw
// text body, then a generic fallback naming the status.
func (c *Client) failure(status int, raw []byte, isJSON bool) error {
	message := ""

	if isJSON && len(raw) > 0 {
		var decoded map[string]any
		if err := json.Unmarshal(raw, &decoded); err == nil {
			if m, ok := decoded["message"].(string); ok && m != "" {
				message = m
			} else if m, ok := decoded["error"].(string); ok && m != "" {
				message = m
			}
		}
	}

	if message == "" && !isJSON {
		message = strings.TrimSpace(string(raw))
	}

	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}

	richErr := errors.New(message, statusCategory(status)).WithCode(status)

	switch status {
	case http.StatusUnauthorized:
		richErr = richErr.WithTextCode(TextCodeUnauthenticated)
	case http.StatusForbidden:
		richErr = richErr.WithTextCode(TextCodeForbidden)
	}

	return richErr
}
