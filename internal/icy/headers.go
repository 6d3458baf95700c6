package icy

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Header names advertised by ICY servers.
const (
	HeaderRequestMetadata = "Icy-MetaData"
	HeaderName            = "icy-name"
	HeaderGenre           = "icy-genre"
	HeaderBitrate         = "icy-br"
	HeaderMetaInt         = "icy-metaint"
	HeaderDescription     = "icy-description"
	HeaderURL             = "icy-url"
)

// Headers holds the header-advertised stream properties.
type Headers struct {
	Name        string
	Genre       string
	Bitrate     string
	Description string
	URL         string
	// MetaInt is the metadata interval, valid only when HasMetaInt is true.
	MetaInt    int
	HasMetaInt bool
}

// ParseHeaders reads the icy-* response headers. A missing, malformed or
// non-positive icy-metaint means the server does not interleave metadata,
// and only the header fields are usable.
func ParseHeaders(h http.Header) Headers {
	out := Headers{
		Name:        headerValue(h, HeaderName),
		Genre:       headerValue(h, HeaderGenre),
		Bitrate:     headerValue(h, HeaderBitrate),
		Description: headerValue(h, HeaderDescription),
		URL:         headerValue(h, HeaderURL),
	}
	if raw := headerValue(h, HeaderMetaInt); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			out.MetaInt = n
			out.HasMetaInt = true
		}
	}
	return out
}

// headerValue returns a trimmed header value decoded as Latin-1. Servers
// send raw ISO-8859-1 bytes in icy-name and friends.
func headerValue(h http.Header, key string) string {
	v := strings.TrimSpace(h.Get(key))
	if v == "" {
		return ""
	}
	if !utf8.ValidString(v) {
		return DecodeLatin1([]byte(v))
	}
	return v
}
