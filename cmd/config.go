package cmd

// Environment variables read as flag fallbacks.
const (
	ENV_POLICY = "WARPCOOKIE_POLICY"
	ENV_FILE   = "WARPCOOKIE_FILE"
)

const DESCRIPTION = `
warpcookie shows which stored cookies a client would send with a
request and how they are written on the wire under each cookie
specification: Netscape, RFC 2109, RFC 2965, browser compatible
or best match.
`

const (
	MatchDescription = `The match command imports a browser cookie store
(Firefox, Chrome or a Netscape cookies.txt), selects the
cookies that apply to the url under the chosen policy and
prints the Cookie and Cookie2 headers a client would send.

Example:
        warpcookie match --cookies cookies.txt https://example.com/app
        warpcookie match -c cookies.sqlite -p rfc2965 http://example.com:8080/

`
	ServeDescription = `The serve command loads a cookie store once and answers
lookups over HTTP with JSON:

        GET /match?url=<url>[&policy=<id>][&secure=true][&single=true]
        GET /policies

Example:
        warpcookie serve --cookies cookies.txt --addr 127.0.0.1:7979

`
	PoliciesDescription = `The policies command lists the registered cookie policies
and the cookie version each one speaks.

Example:
        warpcookie policies

`
)
