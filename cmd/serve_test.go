package cmd

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/warpdl/warpcookie/pkg/cookie"
	"github.com/warpdl/warpcookie/pkg/cookiespec"
	"github.com/warpdl/warpcookie/pkg/cookiestore"
	"github.com/warpdl/warpcookie/pkg/logger"
	"github.com/warpdl/warpcookie/pkg/protocol"
)

func newTestEngine() *engine {
	store := cookiestore.New()
	for _, name := range []string{"name1", "name2"} {
		c := cookie.New(name, "value"+name[len(name)-1:])
		c.Domain = "localhost"
		c.Path = "/"
		c.Expiry = time.Now().Add(time.Hour)
		store.AddCookie(c)
	}
	l := logger.NewMockLogger()
	return &engine{
		store:       store,
		registry:    cookiespec.NewDefaultRegistry(),
		interceptor: protocol.NewRequestAddCookies(&protocol.InterceptorOpts{Logger: l}),
		l:           l,
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServe_Match(t *testing.T) {
	h := newTestEngine().router()
	rec := get(t, h, "/match?url="+url.QueryEscape("http://localhost/"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp matchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected a request id")
	}
	if resp.Origin != "localhost:80/" || resp.Policy != "best-match" {
		t.Errorf("unexpected origin/policy %s %s", resp.Origin, resp.Policy)
	}
	want := cookie.Headers{
		{Key: "Cookie", Value: "name1=value1; name2=value2"},
		{Key: "Cookie2", Value: "$Version=1"},
	}
	if len(resp.Headers) != len(want) {
		t.Fatalf("expected %v, got %v", want, resp.Headers)
	}
	for i := range want {
		if resp.Headers[i] != want[i] {
			t.Errorf("header %d: expected %v, got %v", i, want[i], resp.Headers[i])
		}
	}
}

func TestServe_MatchPolicy(t *testing.T) {
	h := newTestEngine().router()
	rec := get(t, h, "/match?policy=rfc2109&single=true&url="+url.QueryEscape("http://localhost/"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp matchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Headers) != 1 || resp.Headers[0].Value != "$Version=0; name1=value1; name2=value2" {
		t.Fatalf("unexpected headers %v", resp.Headers)
	}
}

func TestServe_BadRequests(t *testing.T) {
	h := newTestEngine().router()
	for _, target := range []string{
		"/match",
		"/match?url=" + url.QueryEscape("not a url"),
		"/match?policy=rfc6265&url=" + url.QueryEscape("http://localhost/"),
	} {
		if rec := get(t, h, target); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestServe_Policies(t *testing.T) {
	rec := get(t, newTestEngine().router(), "/policies")
	var names []string
	if err := json.NewDecoder(rec.Body).Decode(&names); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(names) != 6 {
		t.Fatalf("expected 6 policies, got %v", names)
	}
}

func TestServe_TagsRequestLogs(t *testing.T) {
	buf := &bytes.Buffer{}
	e := newTestEngine()
	e.l = logger.NewStandardLogger(log.New(buf, "", 0), true)

	req := httptest.NewRequest(http.MethodGet, "/match?policy=rfc6265&url="+url.QueryEscape("http://localhost/"), nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	e.router().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "[WARNING] request=req-42 rejected match") {
		t.Fatalf("expected tagged warning, got: %s", buf.String())
	}

	buf.Reset()
	rec = get(t, e.router(), "/match?url="+url.QueryEscape("http://localhost/"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(buf.String(), "[DEBUG] request=") || !strings.Contains(buf.String(), "2 headers") {
		t.Fatalf("expected tagged debug log, got: %s", buf.String())
	}
}
