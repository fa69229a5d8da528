package cookies

import (
	"strings"
	"time"

	"github.com/warpdl/warpcookie/pkg/cookie"
)

// Format identifies the format of a browser cookie store.
type Format int

const (
	// FormatUnknown means the format could not be detected.
	FormatUnknown Format = iota
	// FormatFirefox is the Firefox moz_cookies SQLite schema.
	FormatFirefox
	// FormatChrome is the Chrome cookies SQLite schema. Only unencrypted
	// cookies (value != '') are usable.
	FormatChrome
	// FormatNetscape is the Netscape tab-separated text format.
	FormatNetscape
)

func (f Format) String() string {
	switch f {
	case FormatFirefox:
		return "Firefox"
	case FormatChrome:
		return "Chrome"
	case FormatNetscape:
		return "Netscape"
	default:
		return "unknown"
	}
}

// Source describes where cookies were imported from.
type Source struct {
	// Path is the file system path of the cookie store.
	Path string
	// Format is the detected store format.
	Format Format
	// Browser is the browser name derived from the format.
	Browser string
}

// entry is one row of a browser store before conversion.
type entry struct {
	name, value  string
	domain, path string
	expiry       time.Time
	secure       bool
	httpOnly     bool
}

// record converts a browser row into a version 0 cookie record. Browsers
// store the domain and path they accepted, so both count as sent
// attributes.
func (e entry) record() *cookie.Cookie {
	c := cookie.New(e.name, e.value)
	c.Domain = e.domain
	c.Path = e.path
	if c.Path == "" {
		c.Path = "/"
	}
	c.Expiry = e.expiry
	c.Secure = e.secure
	c.HttpOnly = e.httpOnly
	c.SetAttribute(cookie.DomainAttr, c.Domain)
	c.SetAttribute(cookie.PathAttr, c.Path)
	if c.Secure {
		c.SetAttribute(cookie.SecureAttr, "")
	}
	return c
}

// matchesDomain reports whether a store domain belongs to the requested
// domain: the domain itself, its dotted form or a subdomain. An empty
// requested domain matches everything.
func matchesDomain(storeDomain, domain string) bool {
	if domain == "" {
		return true
	}
	storeDomain = strings.ToLower(storeDomain)
	domain = strings.ToLower(strings.TrimPrefix(domain, "."))
	dotDomain := "." + domain
	return storeDomain == domain || storeDomain == dotDomain || strings.HasSuffix(storeDomain, dotDomain)
}
