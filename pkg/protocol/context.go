package protocol

import (
	"github.com/google/uuid"
	"github.com/warpdl/warpcookie/pkg/cookie"
)

// CookieStore is the read side of a cookie store. Cookies must return a
// snapshot that later mutation of the store does not affect.
type CookieStore interface {
	Cookies() []*cookie.Cookie
}

// Context carries the state interceptors share for one request. The
// transport fills TargetHost and Connection, the client fills CookieStore
// and SpecRegistry; RequestAddCookies fills CookieOrigin and CookieSpec.
type Context struct {
	// ID identifies the request in logs.
	ID string

	// TargetHost is the host the request is addressed to.
	TargetHost *Host
	// Connection is the connection the request will be sent over.
	Connection Connection
	// CookieStore holds the cookies available to the request.
	CookieStore CookieStore
	// SpecRegistry resolves cookie policy identifiers.
	SpecRegistry *cookie.Registry

	// CookieOrigin is the origin cookies were matched against.
	CookieOrigin *cookie.Origin
	// CookieSpec is the spec instance used for the request.
	CookieSpec cookie.Spec
}

// NewContext returns an empty context with a fresh ID.
func NewContext() *Context {
	return &Context{ID: uuid.NewString()}
}
