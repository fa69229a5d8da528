package cookiespec

import "github.com/warpdl/warpcookie/pkg/cookie"

// Netscape follows the original Netscape cookie draft: the host must end
// with the cookie domain, cookies share one Cookie header.
type Netscape struct{}

// NewNetscape returns a Netscape draft spec.
func NewNetscape(cookie.Params) cookie.Spec {
	return &Netscape{}
}

// Match reports whether c applies to origin using the Netscape domain
// tail rule.
func (s *Netscape) Match(c *cookie.Cookie, origin cookie.Origin) bool {
	return matchAttributes(c, origin, netscapeDomainMatch)
}

// FormatCookies renders every cookie into one Cookie header.
func (s *Netscape) FormatCookies(cookies []*cookie.Cookie) cookie.Headers {
	return withVersionHeader(s, formatCombined(cookies), cookies)
}

// Version is 0.
func (s *Netscape) Version() int { return 0 }

// VersionHeader returns no header.
func (s *Netscape) VersionHeader() (cookie.Header, bool) { return cookie.Header{}, false }

// String returns the policy identifier.
func (s *Netscape) String() string { return cookie.PolicyNetscape }
