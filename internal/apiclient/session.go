package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// StoredCookie is the on-disk form of a backend cookie.
type StoredCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

type storedSession struct {
	BaseURL string         `json:"base_url"`
	Cookies []StoredCookie `json:"cookies"`
	SavedAt time.Time      `json:"saved_at"`
}

// SaveSession writes the current backend cookies to path (mode 0600).
func (c *Client) SaveSession(path string) error {
	session := storedSession{BaseURL: c.BaseURL(), SavedAt: time.Now().UTC()}
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		session.Cookies = append(session.Cookies, StoredCookie{Name: cookie.Name, Value: cookie.Value, Path: "/"})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadSession restores cookies saved by SaveSession. A missing file is not an
// error; a session saved for another backend is ignored.
func (c *Client) LoadSession(path string) error {
	payload, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	var session storedSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	if session.BaseURL != c.BaseURL() {
		c.logger.Sugar().Warnf("Ignoring session saved for %s", session.BaseURL)
		return nil
	}

	cookies := make([]*http.Cookie, 0, len(session.Cookies))
	for _, stored := range session.Cookies {
		cookies = append(cookies, &http.Cookie{Name: stored.Name, Value: stored.Value, Path: "/"})
	}
	c.jar.SetCookies(c.baseURL, cookies)
	return nil
}

// ClearSession drops every backend cookie and removes the session file.
func (c *Client) ClearSession(path string) error {
	var expired []*http.Cookie
	for _, cookie := range c.jar.Cookies(c.baseURL) {
		expired = append(expired, &http.Cookie{Name: cookie.Name, Path: "/", MaxAge: -1})
	}
	if len(expired) > 0 {
		c.jar.SetCookies(c.baseURL, expired)
	}

	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
