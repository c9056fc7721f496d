// Package client is a thin typed wrapper over the portfolio REST API.
// It builds the URL, attaches the bearer token when asked to and hands
// the raw response back; it never retries and never parses bodies on
// its own.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	fastshot "github.com/opus-domini/fast-shot"
)

// DefaultBaseURL is used when PORTFOLIO_API_BASE is not set.
const DefaultBaseURL = "http://localhost:4000/api"

// TokenSource yields the stored session token, if any.
type TokenSource interface {
	Get() (string, bool)
}

// Client issues requests against a configurable base address.
type Client struct {
	http   fastshot.ClientHttpMethods
	prefix string
	tokens TokenSource
}

// New creates a Client for baseURL such as "https://example.com/api".
// tokens may be nil, in which case no request is ever authenticated.
func New(baseURL string, tokens TokenSource) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: scheme and host are required", baseURL)
	}

	origin := u.Scheme + "://" + u.Host
	hc := fastshot.NewClient(origin).
		Header().Add("Accept", "application/json").
		Build()

	return &Client{
		http:   hc,
		prefix: strings.TrimRight(u.Path, "/"),
		tokens: tokens,
	}, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, auth bool) (*Response, error) {
	return c.send(ctx, http.MethodGet, path, nil, auth)
}

// Post issues a POST request with body encoded as JSON.
func (c *Client) Post(ctx context.Context, path string, body interface{}, auth bool) (*Response, error) {
	return c.send(ctx, http.MethodPost, path, body, auth)
}

// Put issues a PUT request with body encoded as JSON.
func (c *Client) Put(ctx context.Context, path string, body interface{}, auth bool) (*Response, error) {
	return c.send(ctx, http.MethodPut, path, body, auth)
}

// Patch issues a PATCH request with body encoded as JSON.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, auth bool) (*Response, error) {
	return c.send(ctx, http.MethodPatch, path, body, auth)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, auth bool) (*Response, error) {
	return c.send(ctx, http.MethodDelete, path, nil, auth)
}

// URL returns the full URL for path. A query string in path is kept.
func (c *Client) URL(path string) string {
	return c.prefix + "/" + strings.TrimLeft(path, "/")
}

func (c *Client) send(ctx context.Context, method, path string, body interface{}, auth bool) (*Response, error) {
	path, rawQuery, _ := strings.Cut(path, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid query %q: %w", rawQuery, err)
	}
	full := c.URL(path)

	var req *fastshot.RequestBuilder
	switch method {
	case http.MethodGet:
		req = c.http.GET(full)
	case http.MethodPost:
		req = c.http.POST(full)
	case http.MethodPut:
		req = c.http.PUT(full)
	case http.MethodPatch:
		req = c.http.PATCH(full)
	case http.MethodDelete:
		req = c.http.DELETE(full)
	default:
		return nil, fmt.Errorf("unsupported method %s", method)
	}

	req = req.Context().Set(ctx)
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		for _, value := range query[key] {
			req = req.Query().AddParam(key, value)
		}
	}
	if auth && c.tokens != nil {
		if token, ok := c.tokens.Get(); ok && token != "" {
			req = req.Header().Add("Authorization", "Bearer "+token)
		}
	}
	if body != nil {
		req = req.Header().Add("Content-Type", "application/json").
			Body().AsJSON(body)
	}

	resp, err := req.Send()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, full, err)
	}
	return &Response{raw: resp}, nil
}

// Response is the raw outcome of a request. Callers check OK and decode
// the body themselves; the body can be consumed once.
type Response struct {
	raw *fastshot.Response
}

// StatusCode returns the HTTP status code.
func (r *Response) StatusCode() int {
	return r.raw.Status().Code()
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	code := r.StatusCode()
	return code >= 200 && code < 300
}

// JSON decodes the body into v and closes it.
func (r *Response) JSON(v interface{}) error {
	defer r.Close()
	return r.raw.Body().AsJSON(v)
}

// ErrorMessage reads the body and returns its "error" or "message" field,
// or "" when the body carries neither. It closes the body.
func (r *Response) ErrorMessage() string {
	defer r.Close()
	text, err := r.raw.Body().AsString()
	if err != nil {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal([]byte(text), &body) != nil {
		return ""
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}

// Close releases the response body.
func (r *Response) Close() {
	r.raw.Body().Close()
}
