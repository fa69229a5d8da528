package cookiespec

import (
	"slices"
	"strings"

	"github.com/warpdl/warpcookie/pkg/cookie"
	"golang.org/x/net/publicsuffix"
)

var cookie2Header = cookie.Header{Key: cookie.Cookie2Header, Value: "$Version=1"}

// domainMatcher decides the domain part of a match, which is the one rule
// that differs between the variants.
type domainMatcher func(host, domain string) bool

// matchAttributes applies the rules every variant shares and delegates the
// domain rule. Expiry is left to the caller, which owns the clock.
func matchAttributes(c *cookie.Cookie, origin cookie.Origin, domain domainMatcher) bool {
	if c == nil {
		return false
	}
	return domain(origin.Host(), strings.ToLower(c.Domain)) &&
		pathMatch(c.Path, origin.Path()) &&
		portMatch(c, origin.Port()) &&
		secureMatch(c, origin)
}

// pathMatch reports whether the request path equals the cookie path or lies
// beneath it on a "/" boundary.
func pathMatch(cookiePath, requestPath string) bool {
	if cookiePath == "" {
		cookiePath = "/"
	}
	if len(cookiePath) > 1 && strings.HasSuffix(cookiePath, "/") {
		cookiePath = cookiePath[:len(cookiePath)-1]
	}
	if !strings.HasPrefix(requestPath, cookiePath) {
		return false
	}
	if len(requestPath) == len(cookiePath) || strings.HasSuffix(cookiePath, "/") {
		return true
	}
	return requestPath[len(cookiePath)] == '/'
}

// portMatch restricts a cookie carrying a port list to the listed ports.
// A port attribute without a usable list never matches.
func portMatch(c *cookie.Cookie, port int) bool {
	if len(c.Ports) > 0 {
		return slices.Contains(c.Ports, port)
	}
	return !c.ContainsAttribute(cookie.PortAttr)
}

func secureMatch(c *cookie.Cookie, origin cookie.Origin) bool {
	return !c.Secure || origin.Secure()
}

// compatDomainMatch accepts the host itself and any host beneath the
// domain, with or without a leading dot. Public suffixes such as "co.uk"
// never match unless they equal the host.
func compatDomainMatch(host, domain string) bool {
	if domain == "" {
		return false
	}
	if host == domain {
		return true
	}
	if isPublicSuffix(strings.TrimPrefix(domain, ".")) {
		return false
	}
	if !strings.HasPrefix(domain, ".") {
		domain = "." + domain
	}
	return strings.HasSuffix(host, domain) || host == domain[1:]
}

func isPublicSuffix(domain string) bool {
	suffix, icann := publicsuffix.PublicSuffix(domain)
	if suffix != domain {
		return false
	}
	// unlisted single labels such as "localhost" fall under the implicit
	// "*" rule and stay usable
	return icann || strings.Contains(domain, ".")
}

func netscapeDomainMatch(host, domain string) bool {
	if domain == "" {
		return false
	}
	return strings.HasSuffix(host, domain)
}

func rfc2109DomainMatch(host, domain string) bool {
	if domain == "" {
		return false
	}
	return host == domain || (strings.HasPrefix(domain, ".") && strings.HasSuffix(host, domain))
}

// rfc2965DomainMatch additionally requires that the part of the host in
// front of the domain is a single label.
func rfc2965DomainMatch(host, domain string) bool {
	if !rfc2109DomainMatch(host, domain) {
		return false
	}
	return !strings.Contains(host[:len(host)-len(domain)], ".")
}

// effectiveHost appends ".local" to dotless host names (RFC 2965 section 1).
func effectiveHost(host string) string {
	if !strings.Contains(host, ".") {
		return host + ".local"
	}
	return host
}

// versionHeader returns the Cookie2 header that should accompany cookies.
// A spec with a positive version announces it whenever a cookie is below
// that version or did not come from Set-Cookie2; a version 0 spec announces
// RFC 2965 capability once a server has sent a versioned cookie.
func versionHeader(s cookie.Spec, cookies []*cookie.Cookie) (cookie.Header, bool) {
	ver := s.Version()
	need := false
	for _, c := range cookies {
		if ver > 0 {
			if c.Version != ver || !c.Cookie2 {
				need = true
				break
			}
		} else if c.Version > 0 {
			need = true
			break
		}
	}
	if !need {
		return cookie.Header{}, false
	}
	if ver > 0 {
		return s.VersionHeader()
	}
	return cookie2Header, true
}

func withVersionHeader(s cookie.Spec, headers cookie.Headers, cookies []*cookie.Cookie) cookie.Headers {
	if h, ok := versionHeader(s, cookies); ok {
		headers = append(headers, h)
	}
	return headers
}

// formatCombined renders every cookie into one Cookie header.
func formatCombined(cookies []*cookie.Cookie) cookie.Headers {
	if len(cookies) == 0 {
		return nil
	}
	var sb strings.Builder
	for i, c := range cookies {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(c.Name)
		sb.WriteByte('=')
		if c.Version > 0 && needsQuoting(c.Value) {
			sb.WriteString(quoteValue(c.Value))
		} else {
			sb.WriteString(c.Value)
		}
	}
	return cookie.Headers{{Key: cookie.CookieHeader, Value: sb.String()}}
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteValue(v string) string {
	return `"` + quoteReplacer.Replace(v) + `"`
}

func isQuoted(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}

func needsQuoting(v string) bool {
	if isQuoted(v) {
		return false
	}
	return strings.ContainsAny(v, " \t,;=\"\\()<>@:/[]?{}")
}
