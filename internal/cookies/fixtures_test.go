package cookies

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

type firefoxRow struct {
	Name       string
	Value      string
	Host       string
	Path       string
	Expiry     int64
	IsSecure   int
	IsHttpOnly int
}

type chromeRow struct {
	Name       string
	Value      string
	Encrypted  []byte
	HostKey    string
	Path       string
	ExpiresUTC int64
	IsSecure   int
	IsHttpOnly int
}

func execFixture(t *testing.T, dbPath, schema, insert string, rows [][]any) string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	for _, r := range rows {
		if _, err := db.Exec(insert, r...); err != nil {
			t.Fatalf("failed to insert row: %v", err)
		}
	}
	return dbPath
}

// createFirefoxFixture writes a moz_cookies database into dir.
func createFirefoxFixture(t *testing.T, dir string, rows []firefoxRow) string {
	t.Helper()
	args := make([][]any, len(rows))
	for i, r := range rows {
		args[i] = []any{r.Name, r.Value, r.Host, r.Path, r.Expiry, r.IsSecure, r.IsHttpOnly}
	}
	return execFixture(t, filepath.Join(dir, "cookies.sqlite"), `CREATE TABLE moz_cookies (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        value TEXT NOT NULL,
        host TEXT NOT NULL,
        path TEXT NOT NULL DEFAULT '/',
        expiry INTEGER NOT NULL DEFAULT 0,
        isSecure INTEGER NOT NULL DEFAULT 0,
        isHttpOnly INTEGER NOT NULL DEFAULT 0
    )`, `INSERT INTO moz_cookies (name, value, host, path, expiry, isSecure, isHttpOnly) VALUES (?, ?, ?, ?, ?, ?, ?)`, args)
}

// createChromeFixture writes a Chrome cookies database into dir.
func createChromeFixture(t *testing.T, dir string, rows []chromeRow) string {
	t.Helper()
	args := make([][]any, len(rows))
	for i, r := range rows {
		enc := r.Encrypted
		if enc == nil {
			enc = []byte{}
		}
		args[i] = []any{r.HostKey, r.Name, r.Value, enc, r.Path, r.ExpiresUTC, r.IsSecure, r.IsHttpOnly}
	}
	return execFixture(t, filepath.Join(dir, "Cookies"), `CREATE TABLE cookies (
        creation_utc INTEGER NOT NULL DEFAULT 0,
        host_key TEXT NOT NULL,
        name TEXT NOT NULL,
        value TEXT NOT NULL,
        encrypted_value BLOB NOT NULL DEFAULT x'',
        path TEXT NOT NULL DEFAULT '/',
        expires_utc INTEGER NOT NULL DEFAULT 0,
        is_secure INTEGER NOT NULL DEFAULT 0,
        is_httponly INTEGER NOT NULL DEFAULT 0
    )`, `INSERT INTO cookies (host_key, name, value, encrypted_value, path, expires_utc, is_secure, is_httponly) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, args)
}
