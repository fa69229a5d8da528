package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli"
	"github.com/warpdl/warpcookie/cmd/common"
	"github.com/warpdl/warpcookie/pkg/cookie"
	"github.com/warpdl/warpcookie/pkg/logger"
)

var serveFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "addr, a",
		Usage: "address to listen on",
		Value: "127.0.0.1:7979",
	},
	cookiesFlag,
	policyFlag,
	scriptFlag,
	verboseFlag,
	logFileFlag,
}

type matchResponse struct {
	ID      string         `json:"id"`
	Origin  string         `json:"origin"`
	Policy  string         `json:"policy"`
	Headers cookie.Headers `json:"headers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func serve(ctx *cli.Context) error {
	l, err := newLogger(ctx)
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", "log", err)
		return nil
	}
	defer l.Close()

	e, action, err := newEngine(ctx, l)
	if err != nil {
		common.PrintRuntimeErr(ctx, "serve", action, err)
		return nil
	}
	addr := ctx.String("addr")
	l.Info("serving cookie lookups on %s", addr)
	if err := http.ListenAndServe(addr, e.router()); err != nil {
		common.PrintRuntimeErr(ctx, "serve", "listen", err)
	}
	return nil
}

// router exposes the engine over HTTP:
//
//	GET /policies                             registered policy identifiers
//	GET /match?url=&policy=&secure=&single=   headers for a GET of url
func (e *engine) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/policies", e.handlePolicies)
	r.Get("/match", e.handleMatch)
	return r
}

func (e *engine) handlePolicies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, e.registry.Names())
}

func (e *engine) handleMatch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	secure, _ := strconv.ParseBool(q.Get("secure"))
	single, _ := strconv.ParseBool(q.Get("single"))
	params := cookie.Params{CookiePolicy: q.Get("policy"), SingleCookieHeader: single}

	id := middleware.GetReqID(r.Context())
	l := logger.With(e.l, "request", id)

	pctx, req, err := e.lookup(id, q.Get("url"), params, secure)
	switch {
	case errors.Is(err, errInvalidURL), errors.Is(err, cookie.ErrUnknownPolicy), errors.Is(err, cookie.ErrInvalidArgument), errors.Is(err, cookie.ErrInvalidRequest):
		l.Warning("rejected match: %v", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		l.Error("match failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	resp := matchResponse{
		ID:      pctx.ID,
		Origin:  pctx.CookieOrigin.String(),
		Policy:  fmt.Sprint(pctx.CookieSpec),
		Headers: req.Header,
	}
	if resp.Headers == nil {
		resp.Headers = cookie.Headers{}
	}
	l.Debug("matched %s with %s: %d headers", resp.Origin, resp.Policy, len(resp.Headers))
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
