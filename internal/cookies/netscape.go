package cookies

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/warpdl/warpcookie/pkg/cookie"
	"github.com/warpdl/warpcookie/pkg/logger"
)

const httpOnlyPrefix = "#HttpOnly_"

// ParseNetscape reads cookies for domain from a Netscape cookie file.
// Comment lines are skipped except for the #HttpOnly_ prefix curl and
// browsers write. Malformed lines are skipped with a warning. An expiry of
// 0 marks a session cookie.
func ParseNetscape(fs afero.Fs, filePath, domain string, l logger.Logger) ([]*cookie.Cookie, error) {
	if l == nil {
		l = logger.NewNopLogger()
	}
	f, err := fs.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error: cannot open Netscape cookie file: %w", err)
	}
	defer f.Close()

	now := time.Now()
	var cookies []*cookie.Cookie

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) != 7 {
			l.Warning("skipping malformed Netscape cookie line %d", lineNo)
			continue
		}
		expiry, err := strconv.ParseInt(fields[4], 10, 64)
		if err != nil {
			l.Warning("skipping cookie %q with invalid expiry on line %d", fields[5], lineNo)
			continue
		}
		if !matchesDomain(fields[0], domain) {
			continue
		}

		e := entry{
			domain:   fields[0],
			path:     fields[2],
			secure:   strings.EqualFold(fields[3], "TRUE"),
			name:     fields[5],
			value:    fields[6],
			httpOnly: httpOnly,
		}
		if expiry > 0 {
			e.expiry = time.Unix(expiry, 0)
			if !e.expiry.After(now) {
				l.Debug("skipping expired cookie %q for %s", e.name, e.domain)
				continue
			}
		}
		cookies = append(cookies, e.record())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error: failed to read Netscape cookie file: %w", err)
	}
	return cookies, nil
}
