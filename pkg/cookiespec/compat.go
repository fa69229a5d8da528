package cookiespec

import "github.com/warpdl/warpcookie/pkg/cookie"

// BrowserCompat mimics what common browsers accept: a cookie domain matches
// the host itself and every host beneath it. Cookies are rendered into one
// combined Cookie header.
type BrowserCompat struct{}

// NewBrowserCompat returns a browser compatible spec.
func NewBrowserCompat(cookie.Params) cookie.Spec {
	return &BrowserCompat{}
}

// Match reports whether c applies to origin under browser rules.
func (s *BrowserCompat) Match(c *cookie.Cookie, origin cookie.Origin) bool {
	return matchAttributes(c, origin, compatDomainMatch)
}

// FormatCookies renders every cookie into one Cookie header.
func (s *BrowserCompat) FormatCookies(cookies []*cookie.Cookie) cookie.Headers {
	return withVersionHeader(s, formatCombined(cookies), cookies)
}

// Version is 0.
func (s *BrowserCompat) Version() int { return 0 }

// VersionHeader returns no header.
func (s *BrowserCompat) VersionHeader() (cookie.Header, bool) { return cookie.Header{}, false }

// String returns the policy identifier.
func (s *BrowserCompat) String() string { return cookie.PolicyBrowserCompat }
