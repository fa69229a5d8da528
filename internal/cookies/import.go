package cookies

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/warpdl/warpcookie/pkg/cookie"
	"github.com/warpdl/warpcookie/pkg/logger"
)

// Importer reads browser cookie stores from a file system.
type Importer struct {
	fs afero.Fs
	l  logger.Logger
}

// NewImporter creates an importer. A nil fs reads the OS file system and a
// nil logger discards diagnostics.
func NewImporter(fs afero.Fs, l logger.Logger) *Importer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if l == nil {
		l = logger.NewNopLogger()
	}
	return &Importer{fs: fs, l: l}
}

// Import detects the format of sourcePath and returns the unexpired cookies
// that belong to domain, or all of them when domain is empty.
func (im *Importer) Import(sourcePath, domain string) ([]*cookie.Cookie, *Source, error) {
	format, err := DetectFormat(im.fs, sourcePath)
	if err != nil {
		return nil, nil, err
	}
	source := &Source{Path: sourcePath, Format: format, Browser: format.String()}
	im.l.Debug("importing %s cookies from %s", source.Browser, sourcePath)

	var cookies []*cookie.Cookie
	switch format {
	case FormatFirefox:
		cookies, err = im.importSQLite(sourcePath, domain, ParseFirefox)
	case FormatChrome:
		cookies, err = im.importSQLite(sourcePath, domain, ParseChrome)
	case FormatNetscape:
		cookies, err = ParseNetscape(im.fs, sourcePath, domain, im.l)
	default:
		return nil, nil, fmt.Errorf("error: unsupported cookie database schema at %s", sourcePath)
	}
	if err != nil {
		return nil, nil, err
	}
	im.l.Info("imported %d cookies from %s store", len(cookies), source.Browser)
	return cookies, source, nil
}

func (im *Importer) importSQLite(sourcePath, domain string, parse func(string, string) ([]*cookie.Cookie, error)) ([]*cookie.Cookie, error) {
	copied, cleanup, err := SafeCopy(im.fs, sourcePath)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return parse(copied, domain)
}

// ImportCookies imports cookies for domain from sourcePath on fs without
// logging.
func ImportCookies(fs afero.Fs, sourcePath, domain string) ([]*cookie.Cookie, *Source, error) {
	return NewImporter(fs, nil).Import(sourcePath, domain)
}
