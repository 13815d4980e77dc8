package browser

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
)

// ErrSessionLoadCorrupt marks a session file that exists but cannot be decoded.
var ErrSessionLoadCorrupt = errors.New("session load corrupt")

//Cookie struct represents a browser cookie as stored in the session file
type Cookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite string  `json:"sameSite,omitempty"`
}

// ToPlaywright converts the stored record into the shape BrowserContext.AddCookies expects
func (c Cookie) ToPlaywright() playwright.OptionalCookie {
	pwCookie := playwright.OptionalCookie{
		Name:   c.Name,
		Value:  c.Value,
		Domain: playwright.String(c.Domain),
		Path:   playwright.String(c.Path),
	}

	if c.Path == "" {
		pwCookie.Path = playwright.String("/")
	}

	if c.Expires > 0 {
		pwCookie.Expires = playwright.Float(c.Expires)
	}

	if c.HTTPOnly {
		pwCookie.HttpOnly = playwright.Bool(true)
	}

	if c.Secure {
		pwCookie.Secure = playwright.Bool(true)
	}

	switch c.SameSite {
	case "Lax":
		pwCookie.SameSite = playwright.SameSiteAttributeLax
	case "Strict":
		pwCookie.SameSite = playwright.SameSiteAttributeStrict
	case "None":
		pwCookie.SameSite = playwright.SameSiteAttributeNone
	}

	return pwCookie
}

// CookieFromPlaywright converts a cookie read from a live browser context
func CookieFromPlaywright(pc playwright.Cookie) Cookie {
	c := Cookie{
		Name:     pc.Name,
		Value:    pc.Value,
		Domain:   pc.Domain,
		Path:     pc.Path,
		Expires:  pc.Expires,
		HTTPOnly: pc.HttpOnly,
		Secure:   pc.Secure,
	}
	if pc.SameSite != nil {
		c.SameSite = string(*pc.SameSite)
	}
	return c
}

// FileStore persists session cookies as a JSON array at a fixed path.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Save overwrites the session file with cookies, creating the parent directory if needed
func (s *FileStore) Save(cookies []Cookie) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	if cookies == nil {
		cookies = []Cookie{}
	}
	data, err := json.MarshalIndent(cookies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cookies: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	log.Info("💾 Cookies saved", "path", s.path, "count", len(cookies))
	return nil
}

// Read returns the stored cookies. A missing file yields an fs.ErrNotExist error,
// undecodable content yields ErrSessionLoadCorrupt.
func (s *FileStore) Read() ([]Cookie, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var cookies []Cookie
	if err := json.Unmarshal(data, &cookies); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSessionLoadCorrupt, err)
	}
	return cookies, nil
}

// Load returns the stored cookies, or ok=false when there is no usable session.
// Nothing here is fatal: a missing or corrupt file just means "log in again".
func (s *FileStore) Load() ([]Cookie, bool) {
	log.Info("📦 Loading cookies...", "path", s.path)
	cookies, err := s.Read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("⚠️ Ignoring unusable session file", "path", s.path, "err", err)
		}
		return nil, false
	}
	if len(cookies) == 0 {
		log.Warn("⚠️ Session file holds no cookies", "path", s.path)
		return nil, false
	}
	log.Info("🔍 Cookies loaded", "count", len(cookies))
	return cookies, true
}
