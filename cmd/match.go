package cmd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli"
	"github.com/warpdl/warpcookie/cmd/common"
	"github.com/warpdl/warpcookie/internal/cookies"
	"github.com/warpdl/warpcookie/pkg/cookie"
	"github.com/warpdl/warpcookie/pkg/cookiespec"
	"github.com/warpdl/warpcookie/pkg/cookiestore"
	"github.com/warpdl/warpcookie/pkg/logger"
	"github.com/warpdl/warpcookie/pkg/protocol"
)

// fs is the file system cookie stores and policy scripts are read from.
var fs afero.Fs = afero.NewOsFs()

var (
	cookiesFlag = cli.StringFlag{
		Name:   "cookies, c",
		Usage:  "cookie store to import (Firefox, Chrome or Netscape file)",
		EnvVar: ENV_FILE,
	}
	policyFlag = cli.StringFlag{
		Name:   "policy, p",
		Usage:  "cookie policy used to match and format cookies",
		Value:  cookie.PolicyBestMatch,
		EnvVar: ENV_POLICY,
	}
	scriptFlag = cli.StringFlag{
		Name:  "script",
		Usage: "JavaScript policy file registered as the \"script\" policy",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose, V",
		Usage: "log matching decisions",
	}
	logFileFlag = cli.StringFlag{
		Name:  "log-file",
		Usage: "also append log messages to this file",
	}
)

var matchFlags = []cli.Flag{
	cookiesFlag,
	policyFlag,
	cli.BoolFlag{
		Name:  "secure, s",
		Usage: "treat the connection as secure even for http urls",
	},
	cli.BoolFlag{
		Name:  "single-header",
		Usage: "write all RFC 2109/2965 cookies into one Cookie header",
	},
	scriptFlag,
	verboseFlag,
	logFileFlag,
}

// engine bundles what every cookie lookup needs: the imported cookies,
// the policy registry and the interceptor.
type engine struct {
	store       *cookiestore.BasicStore
	registry    *cookie.Registry
	interceptor *protocol.RequestAddCookies
	l           logger.Logger
}

// newEngine loads the cookie store and script named by the command flags.
func newEngine(ctx *cli.Context, l logger.Logger) (*engine, string, error) {
	e := &engine{
		store:    cookiestore.New(),
		registry: cookiespec.NewDefaultRegistry(),
		l:        l,
	}
	policy := ctx.String("policy")
	if script := ctx.String("script"); script != "" {
		if err := registerScript(e.registry, script); err != nil {
			return nil, "script", err
		}
		if !ctx.IsSet("policy") {
			policy = cookiespec.PolicyScript
		}
	}
	e.interceptor = protocol.NewRequestAddCookies(&protocol.InterceptorOpts{DefaultPolicy: policy, Logger: l})

	if src := ctx.String("cookies"); src != "" {
		imported, source, err := cookies.NewImporter(fs, l).Import(src, "")
		if err != nil {
			return nil, "import", err
		}
		e.store.AddCookies(imported...)
		l.Debug("loaded %d cookies from %s", e.store.Len(), source.Browser)
	}
	return e, "", nil
}

// errInvalidURL is returned for targets without a host.
var errInvalidURL = errors.New("invalid url")

// lookup runs the interceptor for a GET of rawURL. An empty policy uses
// the engine default.
func (e *engine) lookup(id, rawURL string, params cookie.Params, secure bool) (*protocol.Context, *protocol.Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, nil, fmt.Errorf("%w: %s", errInvalidURL, rawURL)
	}
	target := protocol.NewHost(u.Scheme, u.Host)
	secure = secure || target.SchemeName() == "https"

	pctx := protocol.NewContext()
	if id != "" {
		pctx.ID = id
	}
	pctx.TargetHost = target
	pctx.Connection = protocol.NewRoutedConnection(protocol.Route{Target: *target, Secure: secure})
	pctx.CookieStore = e.store
	pctx.SpecRegistry = e.registry

	req := protocol.NewRequest(http.MethodGet, u.RequestURI())
	req.Params = params
	if err := e.interceptor.Process(req, pctx); err != nil {
		return nil, nil, err
	}
	if s, ok := pctx.CookieSpec.(*cookiespec.Script); ok && s.Err() != nil {
		e.l.Warning("[%s] policy script failed: %v", pctx.ID, s.Err())
	}
	return pctx, req, nil
}

func match(ctx *cli.Context) error {
	raw := ctx.Args().First()
	if raw == "" {
		return common.PrintErrWithCmdHelp(ctx, errors.New("url not provided"))
	}

	l, err := newLogger(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "match", "log", err)
		return nil
	}
	defer l.Close()

	e, action, err := newEngine(ctx, l)
	if err != nil {
		common.PrintRuntimeErr(ctx, "match", action, err)
		return nil
	}
	pctx, req, err := e.lookup("", raw, cookie.Params{SingleCookieHeader: ctx.Bool("single-header")}, ctx.Bool("secure"))
	if errors.Is(err, errInvalidURL) {
		return common.PrintErrWithCmdHelp(ctx, err)
	}
	if err != nil {
		common.PrintRuntimeErr(ctx, "match", "process", err)
		return nil
	}
	printMatch(common.Out(ctx), pctx, req)
	return nil
}

func registerScript(registry *cookie.Registry, path string) error {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("error: cannot read policy script: %w", err)
	}
	factory, err := cookiespec.NewScriptFactory(path, string(src))
	if err != nil {
		return err
	}
	registry.Register(cookiespec.PolicyScript, factory)
	return nil
}

// newLogger writes to the app's error writer and, with --log-file, to the
// named file as well.
func newLogger(ctx *cli.Context) (logger.Logger, error) {
	var out io.Writer = os.Stderr
	if ctx.App.ErrWriter != nil {
		out = ctx.App.ErrWriter
	}
	debug := ctx.Bool("verbose")
	console := logger.NewConsoleLogger(out, debug)
	path := ctx.String("log-file")
	if path == "" {
		return console, nil
	}
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error: cannot open log file: %w", err)
	}
	return logger.NewMultiLogger(console, logger.NewFileLogger(f, debug)), nil
}

func printMatch(w io.Writer, pctx *protocol.Context, req *protocol.Request) {
	fmt.Fprintf(w, "Origin: %s\n", pctx.CookieOrigin)
	fmt.Fprintf(w, "Policy: %s\n", pctx.CookieSpec)
	if len(req.Header) == 0 {
		fmt.Fprintln(w, "No cookies apply.")
		return
	}
	for _, h := range req.Header {
		fmt.Fprintln(w, h.String())
	}
}
