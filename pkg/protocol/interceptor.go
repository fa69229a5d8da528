package protocol

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/warpdl/warpcookie/pkg/cookie"
	"github.com/warpdl/warpcookie/pkg/logger"
)

// InterceptorOpts configures RequestAddCookies. The zero value is valid.
type InterceptorOpts struct {
	// DefaultPolicy is used when a request does not select a policy.
	// Defaults to cookie.PolicyBestMatch.
	DefaultPolicy string
	// Logger receives diagnostics. Defaults to a NopLogger.
	Logger logger.Logger
	// Now returns the current time for expiry checks. Defaults to time.Now.
	Now func() time.Time
}

// RequestAddCookies adds the applicable stored cookies to outgoing
// requests. It is safe for concurrent use; all per-request state lives in
// the Request and Context.
type RequestAddCookies struct {
	defaultPolicy string
	l             logger.Logger
	now           func() time.Time
}

// NewRequestAddCookies creates the interceptor. opts may be nil.
func NewRequestAddCookies(opts *InterceptorOpts) *RequestAddCookies {
	if opts == nil {
		opts = &InterceptorOpts{}
	}
	i := &RequestAddCookies{
		defaultPolicy: opts.DefaultPolicy,
		l:             opts.Logger,
		now:           opts.Now,
	}
	if i.defaultPolicy == "" {
		i.defaultPolicy = cookie.PolicyBestMatch
	}
	if i.l == nil {
		i.l = logger.NewNopLogger()
	}
	if i.now == nil {
		i.now = time.Now
	}
	return i
}

// Process adds Cookie headers to req and records the origin and spec in
// ctx. Missing context entries mean there is nothing to add and are not
// errors. Process fails only for a nil request or context, an unparseable
// request URI or a policy without a registered spec; in those cases req and
// ctx are left untouched.
func (i *RequestAddCookies) Process(req *Request, ctx *Context) error {
	if req == nil {
		return fmt.Errorf("%w: HTTP request may not be nil", cookie.ErrInvalidArgument)
	}
	if ctx == nil {
		return fmt.Errorf("%w: HTTP context may not be nil", cookie.ErrInvalidArgument)
	}

	if strings.EqualFold(req.Method, MethodConnect) {
		return nil
	}

	if ctx.CookieStore == nil {
		i.l.Info("[%s] cookie store not available in HTTP context", ctx.ID)
		return nil
	}
	if ctx.SpecRegistry == nil {
		i.l.Info("[%s] cookie spec registry not available in HTTP context", ctx.ID)
		return nil
	}
	if ctx.TargetHost == nil {
		i.l.Debug("[%s] target host not set in the context", ctx.ID)
		return nil
	}
	if !hasConnection(ctx.Connection) {
		i.l.Debug("[%s] HTTP connection not set in the context", ctx.ID)
		return nil
	}

	policy := req.Params.CookiePolicy
	if policy == "" {
		policy = i.defaultPolicy
	}
	i.l.Debug("[%s] cookie spec selected: %s", ctx.ID, policy)

	path, err := requestPath(req.URI)
	if err != nil {
		return err
	}
	origin, err := cookie.NewOrigin(
		ctx.TargetHost.Name,
		targetPort(ctx.TargetHost, ctx.Connection),
		path,
		ctx.Connection.IsSecure(),
	)
	if err != nil {
		return err
	}

	spec, err := ctx.SpecRegistry.NewSpec(policy, req.Params)
	if err != nil {
		return err
	}

	now := i.now()
	var matched []*cookie.Cookie
	for _, c := range ctx.CookieStore.Cookies() {
		if c == nil {
			continue
		}
		if c.IsExpired(now) {
			i.l.Debug("[%s] cookie expired: %s", ctx.ID, c)
			continue
		}
		if spec.Match(c, origin) {
			i.l.Debug("[%s] cookie %s match %s", ctx.ID, c, origin)
			matched = append(matched, c)
		}
	}

	for _, h := range spec.FormatCookies(matched) {
		req.Header.Add(h.Key, h.Value)
	}

	ctx.CookieOrigin = &origin
	ctx.CookieSpec = spec
	return nil
}

// hasConnection reports whether c is set. A nil *RoutedConnection stored in
// the interface counts as unset.
func hasConnection(c Connection) bool {
	if c == nil {
		return false
	}
	if rc, ok := c.(*RoutedConnection); ok && rc == nil {
		return false
	}
	return true
}

// requestPath extracts the path of the request target, "/" when it has
// none.
func requestPath(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", cookie.ErrInvalidRequest, uri, err)
	}
	if u.Path == "" {
		return "/", nil
	}
	return u.Path, nil
}

// targetPort resolves the port cookies are matched against: the explicit
// target port, else the port of the connection's route target, else the
// scheme default.
func targetPort(target *Host, conn Connection) int {
	if target.Port > 0 {
		return target.Port
	}
	route := conn.Route()
	if route.Target.Port > 0 {
		return route.Target.Port
	}
	return target.DefaultPort()
}
