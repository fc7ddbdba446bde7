// Package backend holds typed clients for the remote REST/OData API. Every
// call is a single attempt; failures come back as errors, never panics.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"koistore/internal/backend/odata"
	"koistore/internal/middleware"
	"koistore/pkg/lib/logger/sl"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Error is a failed backend call: either a non-2xx status or an envelope
// with isSuccess=false.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	}
	return false
}

type envelope[T any] struct {
	Data      T      `json:"data"`
	Message   string `json:"message"`
	IsSuccess bool   `json:"isSuccess"`
}

type odataPage[T any] struct {
	Value []T  `json:"value"`
	Count *int `json:"@odata.count"`
}

// Page is one page of an OData collection. Count is the server-side total
// when $count was requested, otherwise the number of items returned.
type Page[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

type tokenKey struct{}

// WithToken attaches the caller's backend JWT to ctx.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the JWT attached by WithToken, or "".
func TokenFrom(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}

type Client struct {
	log     *slog.Logger
	baseURL *url.URL
	http    *http.Client
}

func New(log *slog.Logger, baseURL string, timeout time.Duration) (*Client, error) {
	return NewWithHTTPClient(log, baseURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(log *slog.Logger, baseURL string, httpClient *http.Client) (*Client, error) {
	const op = "backend.New"

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base url %q: %w", op, baseURL, err)
	}

	return &Client{
		log:     log,
		baseURL: u,
		http:    httpClient,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, q *odata.Query, body any) (*http.Request, error) {
	rel := &url.URL{Path: strings.TrimPrefix(path, "/"), RawQuery: q.Encode()}
	u := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := TokenFrom(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	if cid := middleware.GetCorrelationID(ctx); cid != "" {
		req.Header.Set(middleware.HeaderCorrelationID, cid)
	}

	return req, nil
}

// do sends the request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, q *odata.Query, body any) ([]byte, error) {
	log := c.log.With("op", op, "method", method, "path", path)

	req, err := c.newRequest(ctx, method, path, q, body)
	if err != nil {
		log.Error("Failed to build request", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("Request failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: messageOf(raw)}
		log.Warn("Backend returned an error", sl.Err(apiErr))
		return nil, fmt.Errorf("%s: %w", op, apiErr)
	}

	return raw, nil
}

func messageOf(raw []byte) string {
	var env struct {
		Message string `json:"message"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Message != "" {
			return env.Message
		}
		if env.Title != "" {
			return env.Title
		}
	}
	return strings.TrimSpace(string(raw))
}

// call performs a request against an endpoint wrapped in the
// {data, message, isSuccess} envelope.
func call[T any](ctx context.Context, c *Client, op, method, path string, body any) (T, error) {
	var zero T

	raw, err := c.do(ctx, op, method, path, nil, body)
	if err != nil {
		return zero, err
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		// Only calls that discard the payload may see an empty body.
		if _, ok := any(zero).(json.RawMessage); ok {
			return zero, nil
		}
		c.log.With("op", op).Error("Empty response body")
		return zero, fmt.Errorf("%s: decode: %w", op, io.ErrUnexpectedEOF)
	}

	var env envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		c.log.With("op", op).Error("Failed to decode response", sl.Err(err))
		return zero, fmt.Errorf("%s: decode: %w", op, err)
	}

	if !env.IsSuccess {
		apiErr := &Error{Status: http.StatusOK, Message: env.Message}
		c.log.With("op", op).Warn("Backend rejected request", sl.Err(apiErr))
		return zero, fmt.Errorf("%s: %w", op, apiErr)
	}

	return env.Data, nil
}

// query reads an OData collection.
func query[T any](ctx context.Context, c *Client, op, path string, q *odata.Query) (Page[T], error) {
	raw, err := c.do(ctx, op, http.MethodGet, path, q, nil)
	if err != nil {
		return Page[T]{}, err
	}

	var page odataPage[T]
	if err := json.Unmarshal(raw, &page); err != nil {
		c.log.With("op", op).Error("Failed to decode OData response", sl.Err(err))
		return Page[T]{}, fmt.Errorf("%s: decode: %w", op, err)
	}

	out := Page[T]{Items: page.Value, Count: len(page.Value)}
	if page.Count != nil {
		out.Count = *page.Count
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out, nil
}

func mapPage[W, M any](p Page[W], f func(W) M) Page[M] {
	out := Page[M]{Items: make([]M, 0, len(p.Items)), Count: p.Count}
	for _, w := range p.Items {
		out.Items = append(out.Items, f(w))
	}
	return out
}
