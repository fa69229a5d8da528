package cookie

// Cookie policy identifiers understood by the default registry.
const (
	PolicyBestMatch     = "best-match"
	PolicyBrowserCompat = "compatibility"
	PolicyNetscape      = "netscape"
	PolicyRFC2109       = "rfc2109"
	PolicyRFC2965       = "rfc2965"
	PolicyIgnore        = "ignoreCookies"
)

// Spec is a cookie specification: the matching and rendering rules of one
// cookie protocol variant. A Spec is created per request and may keep state
// for the duration of that request only.
type Spec interface {
	// Match reports whether the cookie applies to a request for origin.
	Match(c *Cookie, origin Origin) bool
	// FormatCookies renders matched cookies into request headers. An empty
	// input yields an empty result.
	FormatCookies(cookies []*Cookie) Headers
	// Version is the highest cookie version the spec understands.
	Version() int
	// VersionHeader is the header advertising Version to the server, if the
	// spec has one.
	VersionHeader() (Header, bool)
}

// Factory constructs a fresh Spec for one request.
type Factory func(params Params) Spec

// Params holds request scoped cookie settings. The zero value is valid.
type Params struct {
	// CookiePolicy overrides the client's default policy for one request.
	CookiePolicy string
	// SingleCookieHeader makes RFC 2109 and RFC 2965 specs put every cookie
	// into one Cookie header.
	SingleCookieHeader bool
}
