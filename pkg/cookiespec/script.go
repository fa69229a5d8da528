package cookiespec

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
	"github.com/dop251/goja_nodejs/console"
	"github.com/dop251/goja_nodejs/require"
	"github.com/warpdl/warpcookie/pkg/cookie"
)

// PolicyScript is the identifier the CLI registers a scripted policy under.
const PolicyScript = "script"

// MATCH_CALLBACK is the JavaScript function a policy script must define:
//
//	function match(cookie, origin) { return origin.host.endsWith(cookie.domain) }
const MATCH_CALLBACK = "match"

var (
	ErrMatchNotDefined   = errors.New("policy script does not define match()")
	ErrInvalidReturnType = errors.New("match() must return a boolean")
)

// NewScriptFactory compiles a policy script and returns a factory creating
// one Script spec, with its own JavaScript runtime, per request. The script
// decides domain and path applicability and may use require() and console.
// Port and secure rules are still enforced and matched cookies use the
// combined rendering.
func NewScriptFactory(name, src string) (cookie.Factory, error) {
	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, fmt.Errorf("error: cannot compile policy script %s: %w", name, err)
	}
	// run once up front so a broken script fails at registration
	if _, err := newScriptRuntime(prog); err != nil {
		return nil, err
	}
	return func(cookie.Params) cookie.Spec {
		return &Script{prog: prog}
	}, nil
}

// scriptModules serves require() for every script runtime. Module sources
// are compiled once and shared.
var scriptModules = new(require.Registry)

func newScriptRuntime(prog *goja.Program) (*scriptRuntime, error) {
	vm := goja.New()
	scriptModules.Enable(vm)
	console.Enable(vm)
	if _, err := vm.RunProgram(prog); err != nil {
		return nil, fmt.Errorf("error: policy script failed to load: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get(MATCH_CALLBACK))
	if !ok {
		return nil, ErrMatchNotDefined
	}
	return &scriptRuntime{vm: vm, match: fn}, nil
}

type scriptRuntime struct {
	vm    *goja.Runtime
	match goja.Callable
}

// Script is a cookie spec whose matching rule is written in JavaScript.
// A Script is not safe for concurrent use, like every per-request spec.
type Script struct {
	prog *goja.Program
	rt   *scriptRuntime
	// err keeps the first runtime failure; a failed script matches nothing.
	err error
}

func (s *Script) runtime() *scriptRuntime {
	if s.rt == nil && s.err == nil {
		s.rt, s.err = newScriptRuntime(s.prog)
	}
	return s.rt
}

// Err returns the first error raised while evaluating the script.
func (s *Script) Err() error { return s.err }

// Match enforces the port and secure rules and asks the script for the
// rest. A script error is kept in Err and the cookie does not match.
func (s *Script) Match(c *cookie.Cookie, origin cookie.Origin) bool {
	if c == nil || !portMatch(c, origin.Port()) || !secureMatch(c, origin) {
		return false
	}
	rt := s.runtime()
	if rt == nil {
		return false
	}
	v, err := rt.match(goja.Undefined(), rt.vm.ToValue(exportCookie(c)), rt.vm.ToValue(exportOrigin(origin)))
	if err != nil {
		s.err = err
		return false
	}
	ok, isBool := v.Export().(bool)
	if !isBool {
		s.err = ErrInvalidReturnType
		return false
	}
	return ok
}

// FormatCookies renders every cookie into one Cookie header.
func (s *Script) FormatCookies(cookies []*cookie.Cookie) cookie.Headers {
	return withVersionHeader(s, formatCombined(cookies), cookies)
}

// Version is 0.
func (s *Script) Version() int { return 0 }

// VersionHeader returns no header.
func (s *Script) VersionHeader() (cookie.Header, bool) { return cookie.Header{}, false }

// String returns the policy identifier.
func (s *Script) String() string { return PolicyScript }

// exportCookie exposes the cookie to the script. The value stays on the Go
// side.
func exportCookie(c *cookie.Cookie) map[string]interface{} {
	ports := make([]interface{}, len(c.Ports))
	for i, p := range c.Ports {
		ports[i] = p
	}
	var expiry interface{}
	if !c.Expiry.IsZero() {
		expiry = c.Expiry.UnixMilli()
	}
	return map[string]interface{}{
		"name":    c.Name,
		"domain":  c.Domain,
		"path":    c.Path,
		"ports":   ports,
		"secure":  c.Secure,
		"version": c.Version,
		"expiry":  expiry,
	}
}

func exportOrigin(o cookie.Origin) map[string]interface{} {
	return map[string]interface{}{
		"host":   o.Host(),
		"port":   o.Port(),
		"path":   o.Path(),
		"secure": o.Secure(),
	}
}
