package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	custom_error "github.com/jayeuse/Inventory-System-sub000/pkg/errors"
	"go.uber.org/zap"
)

const (
	CSRFCookie    = "csrftoken"
	SessionCookie = "sessionid"
	CSRFHeader    = "X-CSRFToken"
)

// Client talks to the inventory REST backend. Cookies (session and CSRF) are
// scoped to the backend base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	jar     http.CookieJar
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("api url must be absolute, got %q", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: parsed,
		http:    &http.Client{Jar: jar, Timeout: timeout},
		jar:     jar,
		logger:  logger,
	}, nil
}

func (c *Client) BaseURL() string {
	return strings.TrimRight(c.baseURL.String(), "/")
}

// CSRFToken returns the current csrftoken cookie value, or "" when none was issued.
func (c *Client) CSRFToken() string {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name == CSRFCookie {
			return cookie.Value
		}
	}
	return ""
}

// HasSession reports whether a backend session cookie is present.
func (c *Client) HasSession() bool {
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		if cookie.Name == SessionCookie && cookie.Value != "" {
			return true
		}
	}
	return false
}

func requiresCSRF(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

func (c *Client) resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	return c.baseURL.ResolveReference(&url.URL{
		Path:     strings.TrimLeft(ref.Path, "/"),
		RawQuery: ref.RawQuery,
	}), nil
}

// Do issues one request. body is JSON encoded when non-nil; out receives the
// decoded 2xx payload when non-nil. Non-2xx responses come back as
// custom_error types.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	target, err := c.resolve(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requiresCSRF(method) {
		req.Header.Set(CSRFHeader, c.CSRFToken())
		// Django checks the referer on HTTPS
		req.Header.Set("Referer", c.BaseURL()+"/")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("Request returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return custom_error.WrapHTTPError(resp.StatusCode, raw)
	}

	c.logger.Debug("Request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPatch, path, body, out)
}

// Bootstrap loads the landing page so the backend issues a csrftoken cookie.
func (c *Client) Bootstrap(ctx context.Context) error {
	if c.CSRFToken() != "" {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String(), nil)
	if err != nil {
		return fmt.Errorf("build bootstrap request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("bootstrap csrf cookie: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if c.CSRFToken() == "" {
		c.logger.Warn("Backend did not issue a CSRF cookie", zap.String("url", c.baseURL.String()))
	}
	return nil
}
