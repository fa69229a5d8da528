package cookiespec

import "github.com/warpdl/warpcookie/pkg/cookie"

// NewDefaultRegistry creates a registry holding every built-in policy.
func NewDefaultRegistry() *cookie.Registry {
	r := cookie.NewRegistry()
	r.Register(cookie.PolicyBestMatch, NewBestMatch)
	r.Register(cookie.PolicyBrowserCompat, NewBrowserCompat)
	r.Register(cookie.PolicyNetscape, NewNetscape)
	r.Register(cookie.PolicyRFC2109, NewRFC2109)
	r.Register(cookie.PolicyRFC2965, NewRFC2965)
	r.Register(cookie.PolicyIgnore, NewIgnore)
	return r
}
