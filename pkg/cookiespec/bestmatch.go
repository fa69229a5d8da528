package cookiespec

import "github.com/warpdl/warpcookie/pkg/cookie"

// BestMatch picks the variant per cookie: RFC 2965 for versioned cookies
// received through Set-Cookie2, RFC 2109 for other versioned cookies and
// browser compatibility for unversioned ones. It is the default policy.
type BestMatch struct {
	params cookie.Params

	strict         *RFC2965
	obsoleteStrict *RFC2109
	compat         *BrowserCompat
}

// NewBestMatch returns a best-match spec configured from params.
func NewBestMatch(params cookie.Params) cookie.Spec {
	return &BestMatch{params: params}
}

func (s *BestMatch) getStrict() *RFC2965 {
	if s.strict == nil {
		s.strict = NewRFC2965(s.params).(*RFC2965)
	}
	return s.strict
}

func (s *BestMatch) getObsoleteStrict() *RFC2109 {
	if s.obsoleteStrict == nil {
		s.obsoleteStrict = NewRFC2109(s.params).(*RFC2109)
	}
	return s.obsoleteStrict
}

func (s *BestMatch) getCompat() *BrowserCompat {
	if s.compat == nil {
		s.compat = &BrowserCompat{}
	}
	return s.compat
}

// Match delegates to RFC 2965 for Set-Cookie2 cookies, RFC 2109 for other
// versioned cookies and browser compatibility for the rest.
func (s *BestMatch) Match(c *cookie.Cookie, origin cookie.Origin) bool {
	if c == nil {
		return false
	}
	if c.Version > 0 {
		if c.Cookie2 {
			return s.getStrict().Match(c, origin)
		}
		return s.getObsoleteStrict().Match(c, origin)
	}
	return s.getCompat().Match(c, origin)
}

// FormatCookies uses the strict rendering when every cookie is versioned
// and the combined rendering otherwise.
func (s *BestMatch) FormatCookies(cookies []*cookie.Cookie) cookie.Headers {
	return withVersionHeader(s, s.format(cookies), cookies)
}

func (s *BestMatch) format(cookies []*cookie.Cookie) cookie.Headers {
	if len(cookies) == 0 {
		return nil
	}
	version := cookies[0].Version
	allCookie2 := true
	for _, c := range cookies {
		version = min(version, c.Version)
		if !c.Cookie2 {
			allCookie2 = false
		}
	}
	if version > 0 {
		if allCookie2 {
			return s.getStrict().format(cookies)
		}
		return s.getObsoleteStrict().format(cookies)
	}
	return formatCombined(cookies)
}

// Version reports the RFC 2965 version.
func (s *BestMatch) Version() int { return s.getStrict().Version() }

// VersionHeader returns the RFC 2965 Cookie2 header.
func (s *BestMatch) VersionHeader() (cookie.Header, bool) { return s.getStrict().VersionHeader() }

// String returns the policy identifier.
func (s *BestMatch) String() string { return cookie.PolicyBestMatch }
