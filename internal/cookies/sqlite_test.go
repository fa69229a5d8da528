package cookies

import (
	"testing"
	"time"

	"github.com/warpdl/warpcookie/pkg/cookie"
)

func TestChromeTimestampConversion(t *testing.T) {
	unix := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC).Unix()
	if got := chromeToUnix(unixToChrome(unix)); got != unix {
		t.Fatalf("expected %d, got %d", unix, got)
	}
	if got := chromeToUnix(0); got != -chromeEpochOffsetSeconds {
		t.Fatalf("expected %d, got %d", -chromeEpochOffsetSeconds, got)
	}
}

func TestParseFirefox_BasicParse(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{"sid", "abc123", ".example.com", "/", future, 1, 1},
		{"lang", "en", ".example.com", "/docs", future, 0, 0},
	})

	cookies, err := ParseFirefox(dbPath, "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	// ORDER BY path DESC puts /docs first.
	lang, sid := cookies[0], cookies[1]
	if lang.Name != "lang" || lang.Path != "/docs" {
		t.Errorf("expected lang at /docs first, got %s at %s", lang.Name, lang.Path)
	}
	if !sid.Secure || !sid.HttpOnly {
		t.Errorf("expected sid to be secure and http-only, got secure=%v httponly=%v", sid.Secure, sid.HttpOnly)
	}
	if sid.Expiry.Unix() != future {
		t.Errorf("expected expiry %d, got %d", future, sid.Expiry.Unix())
	}
	if sid.Version != 0 {
		t.Errorf("expected version 0, got %d", sid.Version)
	}
	if v, ok := sid.Attribute(cookie.DomainAttr); !ok || v != ".example.com" {
		t.Errorf("expected domain attribute '.example.com', got '%s' (%v)", v, ok)
	}
	if !sid.ContainsAttribute(cookie.PathAttr) {
		t.Error("expected path attribute")
	}
}

func TestParseFirefox_DomainFiltering(t *testing.T) {
	future := time.Now().Add(24 * time.Hour).Unix()
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{"a", "1", "example.com", "/", future, 0, 0},
		{"b", "2", ".example.com", "/", future, 0, 0},
		{"c", "3", "sub.example.com", "/", future, 0, 0},
		{"d", "4", "other.com", "/", future, 0, 0},
		{"e", "5", "notexample.com", "/", future, 0, 0},
	})

	tests := []struct {
		domain string
		want   int
	}{
		{"example.com", 3},
		{"other.com", 1},
		{"nomatch.org", 0},
		{"", 5},
	}
	for _, tt := range tests {
		cookies, err := ParseFirefox(dbPath, tt.domain)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.domain, err)
		}
		if len(cookies) != tt.want {
			t.Errorf("%q: expected %d cookies, got %d", tt.domain, tt.want, len(cookies))
		}
	}
}

func TestParseFirefox_SkipExpiredCookies(t *testing.T) {
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{"old", "1", ".example.com", "/", time.Now().Add(-time.Hour).Unix(), 0, 0},
		{"new", "2", ".example.com", "/", time.Now().Add(time.Hour).Unix(), 0, 0},
	})
	cookies, err := ParseFirefox(dbPath, "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "new" {
		t.Fatalf("expected only 'new', got %v", cookies)
	}
}

func TestParseFirefox_MissingTable(t *testing.T) {
	dbPath := createChromeFixture(t, t.TempDir(), nil)
	if _, err := ParseFirefox(dbPath, "example.com"); err == nil {
		t.Fatal("expected error for database without moz_cookies")
	}
}

func TestParseChrome_SkipsEncryptedAndExpired(t *testing.T) {
	future := unixToChrome(time.Now().Add(24 * time.Hour).Unix())
	past := unixToChrome(time.Now().Add(-time.Hour).Unix())
	dbPath := createChromeFixture(t, t.TempDir(), []chromeRow{
		{"sid", "abc123", nil, ".example.com", "/", future, 1, 1},
		{"enc", "", []byte{0x76, 0x31, 0x30}, ".example.com", "/", future, 0, 0},
		{"old", "x", nil, ".example.com", "/", past, 0, 0},
		{"session", "s", nil, "example.com", "/", 0, 0, 0},
	})

	cookies, err := ParseChrome(dbPath, "example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 2 {
		t.Fatalf("expected 2 cookies, got %d", len(cookies))
	}
	byName := map[string]*cookie.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	sid, ok := byName["sid"]
	if !ok {
		t.Fatal("expected sid cookie")
	}
	if !sid.Secure || !sid.HttpOnly {
		t.Errorf("expected sid to be secure and http-only")
	}
	wantExpiry := chromeToUnix(future)
	if sid.Expiry.Unix() != wantExpiry {
		t.Errorf("expected expiry %d, got %d", wantExpiry, sid.Expiry.Unix())
	}
	session, ok := byName["session"]
	if !ok {
		t.Fatal("expected session cookie")
	}
	if session.IsPersistent() {
		t.Error("expected session cookie without expiry")
	}
}

func TestParseChrome_EmptyResultForUnmatchedDomain(t *testing.T) {
	future := unixToChrome(time.Now().Add(24 * time.Hour).Unix())
	dbPath := createChromeFixture(t, t.TempDir(), []chromeRow{
		{"sid", "abc", nil, ".example.com", "/", future, 0, 0},
	})
	cookies, err := ParseChrome(dbPath, "other.org")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cookies) != 0 {
		t.Fatalf("expected no cookies, got %d", len(cookies))
	}
}
