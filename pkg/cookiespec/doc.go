// Package cookiespec implements the cookie protocol variants a client can
// negotiate with: browser compatibility heuristics, the Netscape draft,
// RFC 2109, RFC 2965, an adaptive best-match mode, a policy that ignores
// cookies altogether and a JavaScript-defined policy.
//
// Each variant satisfies cookie.Spec. NewDefaultRegistry wires the built-in
// variants under their policy identifiers.
package cookiespec
