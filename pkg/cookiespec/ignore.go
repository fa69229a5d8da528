package cookiespec

import "github.com/warpdl/warpcookie/pkg/cookie"

// Ignore switches cookie handling off: nothing matches, nothing is sent.
type Ignore struct{}

// NewIgnore returns a spec that ignores all cookies.
func NewIgnore(cookie.Params) cookie.Spec {
	return &Ignore{}
}

// Match never matches.
func (s *Ignore) Match(*cookie.Cookie, cookie.Origin) bool { return false }

// FormatCookies returns no headers.
func (s *Ignore) FormatCookies([]*cookie.Cookie) cookie.Headers { return nil }

// Version is 0.
func (s *Ignore) Version() int { return 0 }

// VersionHeader returns no header.
func (s *Ignore) VersionHeader() (cookie.Header, bool) { return cookie.Header{}, false }

// String returns the policy identifier.
func (s *Ignore) String() string { return cookie.PolicyIgnore }
