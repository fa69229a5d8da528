package protocol

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/warpdl/warpcookie/pkg/cookie"
)

// MethodConnect opens a tunnel through a proxy. Tunnel requests address the
// proxy, so they never carry cookies.
const MethodConnect = http.MethodConnect

// Request is the part of an outgoing request the cookie engine needs.
type Request struct {
	// Method is the request method, e.g. "GET".
	Method string
	// URI is the request target as it appears on the request line.
	URI string
	// Header holds the request headers in order. RequestAddCookies only
	// appends to it.
	Header cookie.Headers
	// Params holds per-request cookie settings.
	Params cookie.Params
}

// NewRequest creates a request with the given method and target.
func NewRequest(method, uri string) *Request {
	return &Request{Method: method, URI: uri}
}

// FromHTTP copies method and target of an *http.Request.
func FromHTTP(r *http.Request) *Request {
	uri := r.RequestURI
	if uri == "" && r.URL != nil {
		uri = r.URL.RequestURI()
	}
	return &Request{Method: r.Method, URI: uri}
}

// Apply appends the headers gathered on req to an *http.Request.
func (req *Request) Apply(r *http.Request) {
	if r.Header == nil {
		r.Header = http.Header{}
	}
	req.Header.Apply(r.Header)
}

// Host is a network destination.
type Host struct {
	// Name is the host name or address.
	Name string
	// Port is the port, or 0 when the scheme default applies.
	Port int
	// Scheme is the protocol scheme, "http" when empty.
	Scheme string
}

// NewHost creates a host from a scheme and an authority such as
// "example.com:8080".
func NewHost(scheme, authority string) *Host {
	h := &Host{Name: authority, Scheme: strings.ToLower(scheme)}
	if name, port, err := net.SplitHostPort(authority); err == nil {
		h.Name = name
		h.Port, _ = strconv.Atoi(port)
	}
	return h
}

// SchemeName returns the scheme, defaulting to "http".
func (h *Host) SchemeName() string {
	if h.Scheme == "" {
		return "http"
	}
	return strings.ToLower(h.Scheme)
}

// DefaultPort returns the well-known port of the host's scheme.
func (h *Host) DefaultPort() int {
	if h.SchemeName() == "https" {
		return 443
	}
	return 80
}

func (h *Host) String() string {
	if h.Port > 0 {
		return h.SchemeName() + "://" + net.JoinHostPort(h.Name, strconv.Itoa(h.Port))
	}
	return h.SchemeName() + "://" + h.Name
}

// Route describes how a connection reaches its target.
type Route struct {
	// Target is the final destination.
	Target Host
	// Proxy is the proxy the connection goes through, nil for direct routes.
	Proxy *Host
	// Secure reports whether the route is layered over TLS.
	Secure bool
}

// HopCount returns 1 for direct routes and 2 for proxied ones.
func (r Route) HopCount() int {
	if r.Proxy != nil {
		return 2
	}
	return 1
}

// Connection is the connection a request is sent over.
type Connection interface {
	// IsSecure reports whether the connection uses TLS.
	IsSecure() bool
	// Route returns the route the connection was opened for.
	Route() Route
}

// RoutedConnection is a plain Connection value.
type RoutedConnection struct {
	R Route
}

// NewRoutedConnection creates a connection for the given route.
func NewRoutedConnection(r Route) *RoutedConnection {
	return &RoutedConnection{R: r}
}

func (c *RoutedConnection) IsSecure() bool { return c.R.Secure }

func (c *RoutedConnection) Route() Route { return c.R }
