package cookies

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

// sqliteMagic is the first 16 bytes of any SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

var netscapeHeaders = []string{"# Netscape HTTP Cookie File", "# HTTP Cookie File"}

// DetectFormat determines the format of the cookie store at path. SQLite
// stores are told apart by their cookie table, text files by the Netscape
// header line.
func DetectFormat(fs afero.Fs, path string) (Format, error) {
	if err := checkSource(fs, path); err != nil {
		return FormatUnknown, err
	}

	f, err := fs.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("error: cannot open cookie file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown, fmt.Errorf("error: cannot read cookie file: %w", err)
	}
	head = head[:n]

	if bytes.HasPrefix(head, sqliteMagic) {
		return detectSQLite(fs, path)
	}

	firstLine, _, _ := strings.Cut(string(head), "\n")
	firstLine = strings.TrimRight(firstLine, "\r")
	for _, h := range netscapeHeaders {
		if firstLine == h {
			return FormatNetscape, nil
		}
	}
	return FormatUnknown, fmt.Errorf("error: unsupported cookie database schema at %s", path)
}

// checkSource rejects missing, directory and empty sources.
func checkSource(fs afero.Fs, path string) error {
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("error: cookie file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("error: %s is a directory, expected a cookie file path", path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("error: cookie file at %s is empty or corrupted", path)
	}
	return nil
}

// detectSQLite copies the database and looks for the Firefox or Chrome
// cookie table.
func detectSQLite(fs afero.Fs, path string) (Format, error) {
	copied, cleanup, err := SafeCopy(fs, path)
	if err != nil {
		return FormatUnknown, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", copied))
	if err != nil {
		return FormatUnknown, fmt.Errorf("error: cannot open SQLite database: %w", err)
	}
	defer db.Close()

	tables := []struct {
		name   string
		format Format
	}{
		{"moz_cookies", FormatFirefox},
		{"cookies", FormatChrome},
	}
	for _, tbl := range tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, tbl.name).Scan(&name)
		if err == nil {
			return tbl.format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("error: unsupported cookie database schema at %s", path)
}
