package cookies

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/warpdl/warpcookie/pkg/cookie"
	_ "modernc.org/sqlite"
)

// chromeEpochOffsetSeconds is the number of seconds between the Windows NT
// epoch (1601-01-01 UTC) and the Unix epoch.
const chromeEpochOffsetSeconds int64 = 11_644_473_600

// chromeToUnix converts a Chrome timestamp (microseconds since 1601) to
// Unix seconds.
func chromeToUnix(chromeUSec int64) int64 {
	return (chromeUSec / 1_000_000) - chromeEpochOffsetSeconds
}

// unixToChrome is the inverse of chromeToUnix.
func unixToChrome(unix int64) int64 {
	return (unix + chromeEpochOffsetSeconds) * 1_000_000
}

const firefoxQuery = `
        SELECT name, value, host, path, expiry, isSecure, isHttpOnly
        FROM moz_cookies
        WHERE expiry > ?
        ORDER BY path DESC, name ASC`

// Chrome marks session cookies with expires_utc = 0.
const chromeQuery = `
        SELECT name, value, host_key, path, expires_utc, is_secure, is_httponly
        FROM cookies
        WHERE value != ''
          AND (expires_utc = 0 OR expires_utc > ?)
        ORDER BY path DESC, name ASC`

// ParseFirefox reads unexpired cookies for domain from a copied Firefox
// cookies.sqlite file.
func ParseFirefox(dbPath, domain string) ([]*cookie.Cookie, error) {
	return querySQLite(dbPath, domain, FormatFirefox, firefoxQuery, time.Now().Unix(), func(expiry int64) time.Time {
		return time.Unix(expiry, 0)
	})
}

// ParseChrome reads unexpired, unencrypted cookies for domain from a copied
// Chrome Cookies file. Encrypted cookies have an empty value column and are
// skipped.
func ParseChrome(dbPath, domain string) ([]*cookie.Cookie, error) {
	return querySQLite(dbPath, domain, FormatChrome, chromeQuery, unixToChrome(time.Now().Unix()), func(expiry int64) time.Time {
		if expiry == 0 {
			return time.Time{}
		}
		return time.Unix(chromeToUnix(expiry), 0)
	})
}

func querySQLite(dbPath, domain string, format Format, query string, now int64, expiryOf func(int64) time.Time) ([]*cookie.Cookie, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?immutable=1", dbPath))
	if err != nil {
		return nil, fmt.Errorf("error: cannot open %s cookie database: %w", format, err)
	}
	defer db.Close()

	rows, err := db.Query(query, now)
	if err != nil {
		return nil, fmt.Errorf("error: failed to query %s cookies: %w", format, err)
	}
	defer rows.Close()

	var cookies []*cookie.Cookie
	for rows.Next() {
		var (
			e                    entry
			expiry               int64
			isSecure, isHttpOnly int
		)
		if err := rows.Scan(&e.name, &e.value, &e.domain, &e.path, &expiry, &isSecure, &isHttpOnly); err != nil {
			return nil, fmt.Errorf("error: failed to scan %s cookie row: %w", format, err)
		}
		if !matchesDomain(e.domain, domain) {
			continue
		}
		e.expiry = expiryOf(expiry)
		e.secure = isSecure != 0
		e.httpOnly = isHttpOnly != 0
		cookies = append(cookies, e.record())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to iterate %s cookie rows: %w", format, err)
	}
	return cookies, nil
}
