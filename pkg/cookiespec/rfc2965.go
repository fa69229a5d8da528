package cookiespec

import (
	"strconv"
	"strings"

	"github.com/warpdl/warpcookie/pkg/cookie"
)

// RFC2965 implements RFC 2965 on top of the RFC 2109 wire format. Hosts
// without a dot are matched as "host.local", port lists are echoed as
// $Port, and the client announces itself with "Cookie2: $Version=1".
type RFC2965 struct {
	RFC2109
}

// NewRFC2965 returns an RFC 2965 spec configured from params.
func NewRFC2965(params cookie.Params) cookie.Spec {
	s := &RFC2965{RFC2109: RFC2109{single: params.SingleCookieHeader}}
	s.appendAttrs = appendPortAttr
	return s
}

// Match reports whether c applies to the effective host of origin.
func (s *RFC2965) Match(c *cookie.Cookie, origin cookie.Origin) bool {
	return matchAttributes(c, origin.WithHost(effectiveHost(origin.Host())), rfc2965DomainMatch)
}

// FormatCookies renders like RFC2109 and echoes port lists.
func (s *RFC2965) FormatCookies(cookies []*cookie.Cookie) cookie.Headers {
	return withVersionHeader(s, s.format(cookies), cookies)
}

// Version is 1.
func (s *RFC2965) Version() int { return 1 }

// VersionHeader returns "Cookie2: $Version=1".
func (s *RFC2965) VersionHeader() (cookie.Header, bool) { return cookie2Header, true }

// String returns the policy identifier.
func (s *RFC2965) String() string { return cookie.PolicyRFC2965 }

// appendPortAttr echoes the port attribute when the server sent one. A
// blank attribute is echoed as $Port="".
func appendPortAttr(sb *strings.Builder, c *cookie.Cookie, _ int) {
	raw, ok := c.Attribute(cookie.PortAttr)
	if !ok {
		return
	}
	sb.WriteString(`; $Port="`)
	if strings.TrimSpace(raw) != "" {
		for i, p := range c.Ports {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(strconv.Itoa(p))
		}
	}
	sb.WriteByte('"')
}
