// Package protocol contains the request side of the client cookie engine.
//
// RequestAddCookies runs once per outgoing request. It reads the target,
// the connection, the cookie store and the spec registry from a typed
// Context, adds Cookie and Cookie2 headers for every stored cookie the
// selected spec matches, and publishes the Origin and Spec it used back into
// the Context so the response side can apply the same rules to Set-Cookie
// headers.
package protocol
