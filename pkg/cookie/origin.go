package cookie

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

// Origin describes the destination of an outgoing request: the key every
// stored cookie is matched against. The zero value is not valid; use
// NewOrigin.
type Origin struct {
	host   string
	port   int
	path   string
	secure bool
}

// NewOrigin validates and normalises the request destination. The host is
// lowercased and converted to its ASCII (punycode) form, the port must be
// positive and an empty path becomes "/".
func NewOrigin(host string, port int, path string, secure bool) (Origin, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return Origin{}, fmt.Errorf("%w: origin host may not be empty", ErrInvalidArgument)
	}
	if port <= 0 {
		return Origin{}, fmt.Errorf("%w: invalid origin port %d", ErrInvalidArgument, port)
	}
	ascii, err := asciiHost(host)
	if err != nil {
		return Origin{}, fmt.Errorf("%w: origin host %q: %v", ErrInvalidArgument, host, err)
	}
	if path == "" {
		path = "/"
	}
	return Origin{
		host:   ascii,
		port:   port,
		path:   path,
		secure: secure,
	}, nil
}

func asciiHost(host string) (string, error) {
	host = strings.ToLower(host)
	for i := 0; i < len(host); i++ {
		if host[i] >= utf8.RuneSelf {
			return idna.Lookup.ToASCII(host)
		}
	}
	return host, nil
}

// Host returns the lowercased ASCII host name.
func (o Origin) Host() string { return o.host }

// Port returns the destination port.
func (o Origin) Port() int { return o.port }

// Path returns the request path, never empty.
func (o Origin) Path() string { return o.path }

// Secure reports whether the request travels over a secure transport.
func (o Origin) Secure() bool { return o.secure }

// WithHost returns a copy of the origin addressed to another host name.
// RFC 2965 uses it to match against the effective host name.
func (o Origin) WithHost(host string) Origin {
	o.host = strings.ToLower(host)
	return o
}

func (o Origin) String() string {
	var sb strings.Builder
	if o.secure {
		sb.WriteString("(secure)")
	}
	sb.WriteString(o.host)
	sb.WriteByte(':')
	sb.WriteString(strconv.Itoa(o.port))
	sb.WriteString(o.path)
	return sb.String()
}
