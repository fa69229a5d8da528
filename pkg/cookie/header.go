package cookie

import (
	"net/http"
	"strings"
)

const (
	// CookieHeader is the request header carrying cookies.
	CookieHeader = "Cookie"
	// Cookie2Header advertises the client's RFC 2965 capability.
	Cookie2Header = "Cookie2"
)

// Headers represents an ordered list of headers. Duplicate keys are allowed.
type Headers []Header

// Header represents a key-value pair.
type Header struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Add appends a header, keeping any existing ones with the same key.
func (h *Headers) Add(key, value string) {
	*h = append(*h, Header{key, value})
}

// Get returns the index of the first header with the given key.
// If the header is not found, the second return value is false.
func (h Headers) Get(key string) (index int, have bool) {
	for i, x := range h {
		if !strings.EqualFold(x.Key, key) {
			continue
		}
		index = i
		have = true
		break
	}
	return
}

// Values returns the values of every header with the given key, in order.
func (h Headers) Values(key string) []string {
	var vals []string
	for _, x := range h {
		if strings.EqualFold(x.Key, key) {
			vals = append(vals, x.Value)
		}
	}
	return vals
}

// Apply adds the headers to the given http.Header in order.
func (h Headers) Apply(header http.Header) {
	for _, x := range h {
		header.Add(x.Key, x.Value)
	}
}

func (h Header) String() string {
	return h.Key + ": " + h.Value
}
