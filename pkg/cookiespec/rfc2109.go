package cookiespec

import (
	"sort"
	"strconv"
	"strings"

	"github.com/warpdl/warpcookie/pkg/cookie"
)

// RFC2109 implements RFC 2109 matching and the versioned wire format. By
// default every cookie gets its own Cookie header prefixed with its
// $Version; Params.SingleCookieHeader combines them.
type RFC2109 struct {
	single bool
	// appendAttrs writes extra attributes after $Path and $Domain.
	appendAttrs func(sb *strings.Builder, c *cookie.Cookie, version int)
}

// NewRFC2109 returns an RFC 2109 spec configured from params.
func NewRFC2109(params cookie.Params) cookie.Spec {
	return &RFC2109{single: params.SingleCookieHeader}
}

// Match reports whether c applies to origin. Domains without a leading
// dot only match the exact host.
func (s *RFC2109) Match(c *cookie.Cookie, origin cookie.Origin) bool {
	return matchAttributes(c, origin, rfc2109DomainMatch)
}

// FormatCookies renders one header per cookie, or a single header sorted
// by path when configured.
func (s *RFC2109) FormatCookies(cookies []*cookie.Cookie) cookie.Headers {
	return withVersionHeader(s, s.format(cookies), cookies)
}

// Version is 1 although RFC 2109 defines no Cookie2 header to announce it.
func (s *RFC2109) Version() int { return 1 }

// VersionHeader returns no header.
func (s *RFC2109) VersionHeader() (cookie.Header, bool) { return cookie.Header{}, false }

// String returns the policy identifier.
func (s *RFC2109) String() string { return cookie.PolicyRFC2109 }

func (s *RFC2109) format(cookies []*cookie.Cookie) cookie.Headers {
	if len(cookies) == 0 {
		return nil
	}
	sorted := sortByPath(cookies)
	if s.single {
		return s.formatOneHeader(sorted)
	}
	return s.formatManyHeaders(sorted)
}

func (s *RFC2109) formatOneHeader(cookies []*cookie.Cookie) cookie.Headers {
	version := cookies[0].Version
	for _, c := range cookies[1:] {
		version = min(version, c.Version)
	}
	var sb strings.Builder
	formatParam(&sb, "$Version", strconv.Itoa(version), 0)
	for _, c := range cookies {
		sb.WriteString("; ")
		s.formatCookie(&sb, c, version)
	}
	return cookie.Headers{{Key: cookie.CookieHeader, Value: sb.String()}}
}

func (s *RFC2109) formatManyHeaders(cookies []*cookie.Cookie) cookie.Headers {
	headers := make(cookie.Headers, 0, len(cookies))
	for _, c := range cookies {
		var sb strings.Builder
		formatParam(&sb, "$Version", strconv.Itoa(c.Version), 0)
		sb.WriteString("; ")
		s.formatCookie(&sb, c, c.Version)
		headers.Add(cookie.CookieHeader, sb.String())
	}
	return headers
}

// formatCookie writes name=value followed by the $Path and $Domain
// attributes, but only those the server sent explicitly.
func (s *RFC2109) formatCookie(sb *strings.Builder, c *cookie.Cookie, version int) {
	formatParam(sb, c.Name, c.Value, version)
	if c.Path != "" && c.ContainsAttribute(cookie.PathAttr) {
		sb.WriteString("; ")
		formatParam(sb, "$Path", c.Path, version)
	}
	if c.Domain != "" && c.ContainsAttribute(cookie.DomainAttr) {
		sb.WriteString("; ")
		formatParam(sb, "$Domain", c.Domain, version)
	}
	if s.appendAttrs != nil {
		s.appendAttrs(sb, c, version)
	}
}

// formatParam quotes values of versioned cookies.
func formatParam(sb *strings.Builder, name, value string, version int) {
	sb.WriteString(name)
	sb.WriteByte('=')
	if version > 0 {
		sb.WriteString(quoteValue(value))
	} else {
		sb.WriteString(value)
	}
}

// sortByPath orders cookies with deeper paths first, keeping the store
// order among cookies of equal depth. A path always sorts ahead of the
// paths it nests under.
func sortByPath(cookies []*cookie.Cookie) []*cookie.Cookie {
	sorted := append([]*cookie.Cookie(nil), cookies...)
	if len(sorted) < 2 {
		return sorted
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return pathDepth(sorted[i].Path) > pathDepth(sorted[j].Path)
	})
	return sorted
}

func pathDepth(p string) int {
	return strings.Count(normalizePath(p), "/")
}

func normalizePath(p string) string {
	if p == "" {
		p = "/"
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
