// Package movieapi is the client for the remote movie rating REST API.
//
// Each exported method maps to one endpoint. Methods that mutate or read private
// data take the caller's bearer token; passing an empty token fails with
// ErrNotAuthenticated before any request is made. Calls are attempted exactly once.
package movieapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PlaceholderAsset is served when an entity has no image.
const PlaceholderAsset = "/static/placeholder.svg"

// Client is the movie API client.
type Client struct {
	baseURL string
	origin  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient creates a client for the API served at origin under basePath.
// The default HTTP client has no timeout; callers bound calls with ctx.
func NewClient(origin, basePath string, opts ...Option) *Client {
	origin = strings.TrimRight(origin, "/")
	c := &Client{
		baseURL: origin + "/" + strings.Trim(basePath, "/"),
		origin:  origin,
		http: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Origin returns the API origin static assets are served from.
func (c *Client) Origin() string {
	return c.origin
}

// AssetURL turns a server-relative asset path into an absolute URL.
// Empty paths resolve to the placeholder image.
func (c *Client) AssetURL(path string) string {
	if path == "" {
		return PlaceholderAsset
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return c.origin + "/" + strings.TrimLeft(path, "/")
}

// Upload is a file sent as the multipart form field "file".
type Upload struct {
	Filename string
	Content  io.Reader
}

// request describes one API call.
type request struct {
	// op names the operation in fallback error messages, e.g. "create movie".
	op     string
	method string
	path   string
	query  url.Values
	token  string
	auth   bool
	json   any
	form   url.Values
	upload *Upload
}

func (c *Client) do(ctx context.Context, r request, out any) error {
	if r.auth && r.token == "" {
		return ErrNotAuthenticated
	}

	body, contentType, err := encodeBody(r)
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", r.op, err)
	}

	target := c.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", r.op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	slog.Debug("calling movie API", "op", r.op, "method", r.method, "path", r.path)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("movie API unreachable", "op", r.op, "error", err)
		return &NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: r.op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newHTTPError(r.op, resp.StatusCode, payload)
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", r.op, err)
	}
	return nil
}

func encodeBody(r request) (io.Reader, string, error) {
	switch {
	case r.upload != nil:
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", r.upload.Filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, r.upload.Content); err != nil {
			return nil, "", err
		}
		if err := mw.Close(); err != nil {
			return nil, "", err
		}
		return &buf, mw.FormDataContentType(), nil
	case r.form != nil:
		return strings.NewReader(r.form.Encode()), "application/x-www-form-urlencoded", nil
	case r.json != nil:
		data, err := json.Marshal(r.json)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	default:
		return nil, "", nil
	}
}
