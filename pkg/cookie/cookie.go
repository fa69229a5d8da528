package cookie

import (
	"strings"
	"time"
)

// Attribute names a server may send with a cookie. Specs consult them to
// decide which attributes are echoed back on the wire.
const (
	VersionAttr    = "version"
	PathAttr       = "path"
	DomainAttr     = "domain"
	MaxAgeAttr     = "max-age"
	SecureAttr     = "secure"
	CommentAttr    = "comment"
	ExpiresAttr    = "expires"
	PortAttr       = "port"
	CommentURLAttr = "commenturl"
	DiscardAttr    = "discard"
)

// Cookie is a stored cookie record. Records are owned by a store and are
// read, never modified, by the request side of the engine.
type Cookie struct {
	// Name is the cookie name.
	Name string
	// Value is the cookie value. Never log it.
	Value string
	// Domain is the domain the cookie was set for, possibly with a leading dot.
	Domain string
	// Path is the path scope. Empty means "/".
	Path string
	// Ports restricts the cookie to the listed request ports when non-empty.
	Ports []int
	// Expiry is the expiration time; the zero value marks a session cookie.
	Expiry time.Time
	// Secure restricts the cookie to secure transports.
	Secure bool
	// Version is the cookie specification version the server declared.
	Version int
	// Comment and CommentURL are the RFC 2109/2965 comment attributes.
	Comment    string
	CommentURL string
	// Discard asks the client to drop the cookie at the end of the session.
	Discard bool
	// HttpOnly is informational for a client; kept for imported cookies.
	HttpOnly bool
	// Created is when the record was accepted.
	Created time.Time
	// Cookie2 is set for records received through a Set-Cookie2 header.
	Cookie2 bool

	attribs map[string]string
}

// New returns a cookie with the given name and value.
func New(name, value string) *Cookie {
	return &Cookie{Name: name, Value: value}
}

// SetAttribute records an attribute exactly as the server sent it.
func (c *Cookie) SetAttribute(name, value string) {
	if c.attribs == nil {
		c.attribs = make(map[string]string)
	}
	c.attribs[strings.ToLower(name)] = value
}

// Attribute returns the raw value of an attribute sent by the server.
func (c *Cookie) Attribute(name string) (string, bool) {
	v, ok := c.attribs[strings.ToLower(name)]
	return v, ok
}

// ContainsAttribute reports whether the server sent the attribute.
func (c *Cookie) ContainsAttribute(name string) bool {
	_, ok := c.attribs[strings.ToLower(name)]
	return ok
}

// IsPersistent reports whether the cookie outlives the session.
func (c *Cookie) IsPersistent() bool {
	return !c.Expiry.IsZero()
}

// IsExpired reports whether the cookie has expired at the given instant.
// Session cookies never expire.
func (c *Cookie) IsExpired(now time.Time) bool {
	return !c.Expiry.IsZero() && !c.Expiry.After(now)
}

// Clone returns a deep copy of the record.
func (c *Cookie) Clone() *Cookie {
	cc := *c
	if c.Ports != nil {
		cc.Ports = append([]int(nil), c.Ports...)
	}
	if c.attribs != nil {
		cc.attribs = make(map[string]string, len(c.attribs))
		for k, v := range c.attribs {
			cc.attribs[k] = v
		}
	}
	return &cc
}

// String renders the cookie for debugging. The value is never included.
func (c *Cookie) String() string {
	var sb strings.Builder
	sb.WriteString("[name: ")
	sb.WriteString(c.Name)
	sb.WriteString("][domain: ")
	sb.WriteString(c.Domain)
	sb.WriteString("][path: ")
	sb.WriteString(c.Path)
	sb.WriteString("][expiry: ")
	if c.Expiry.IsZero() {
		sb.WriteString("session")
	} else {
		sb.WriteString(c.Expiry.UTC().Format(time.RFC1123))
	}
	sb.WriteString("]")
	return sb.String()
}
