// Package cookiestore provides the default in-memory cookie store.
package cookiestore

import (
	"strings"
	"sync"
	"time"

	"github.com/warpdl/warpcookie/pkg/cookie"
)

// BasicStore is an ordered, thread-safe cookie store. Cookies keep the order
// in which they were first added; a cookie with the same identity (name,
// domain and path) replaces the stored one in place.
type BasicStore struct {
	mu      sync.RWMutex
	cookies []*cookie.Cookie
}

// New creates an empty store.
func New() *BasicStore {
	return &BasicStore{}
}

func identity(c *cookie.Cookie) string {
	path := c.Path
	if path == "" {
		path = "/"
	}
	return c.Name + "\x00" + strings.ToLower(c.Domain) + "\x00" + path
}

// AddCookie adds a cookie, replacing any stored cookie with the same
// identity. A cookie that has already expired only removes the stored one.
func (s *BasicStore) AddCookie(c *cookie.Cookie) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(c, time.Now())
}

// AddCookies adds every cookie in order.
func (s *BasicStore) AddCookies(cookies ...*cookie.Cookie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, c := range cookies {
		if c != nil {
			s.add(c, now)
		}
	}
}

func (s *BasicStore) add(c *cookie.Cookie, now time.Time) {
	id := identity(c)
	for i, x := range s.cookies {
		if identity(x) != id {
			continue
		}
		if c.IsExpired(now) {
			s.cookies = append(s.cookies[:i], s.cookies[i+1:]...)
		} else {
			s.cookies[i] = c
		}
		return
	}
	if !c.IsExpired(now) {
		s.cookies = append(s.cookies, c)
	}
}

// Cookies returns a snapshot of the stored cookies in store order. Later
// changes to the store do not affect the returned slice.
func (s *BasicStore) Cookies() []*cookie.Cookie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*cookie.Cookie(nil), s.cookies...)
}

// ClearExpired removes every cookie expired at the given instant and
// reports whether any was removed.
func (s *BasicStore) ClearExpired(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.cookies[:0]
	for _, c := range s.cookies {
		if !c.IsExpired(now) {
			kept = append(kept, c)
		}
	}
	removed := len(kept) != len(s.cookies)
	// drop references held past the new length
	for i := len(kept); i < len(s.cookies); i++ {
		s.cookies[i] = nil
	}
	s.cookies = kept
	return removed
}

// Clear removes all cookies.
func (s *BasicStore) Clear() {
	s.mu.Lock()
	s.cookies = nil
	s.mu.Unlock()
}

// Len returns the number of stored cookies.
func (s *BasicStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cookies)
}

func (s *BasicStore) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	parts := make([]string, len(s.cookies))
	for i, c := range s.cookies {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
