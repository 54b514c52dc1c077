// Package robots serves the crawler policy for the site.
package robots

import (
	"io"
	"net/http"
	"strings"

	"github.com/mabego/admingate/internal/requestinfo"
)

const (
	DefaultScheme    = "https"
	SitemapPath      = "/sitemap.xml"
	DisallowedPrefix = "/admin/"
)

// Origin returns the public origin the client used to reach the site.
// Proxy headers win over the request's own Host so that the sitemap points
// at the public name rather than an internal one.
func Origin(info requestinfo.Info) string {
	scheme := info.ForwardedProto
	if scheme == "" {
		scheme = DefaultScheme
	}

	host := info.ForwardedHost
	if host == "" {
		host = info.Host
	}
	if host == "" {
		host = info.URLHost
	}

	return scheme + "://" + host
}

// Document renders robots.txt for origin.
func Document(origin string) string {
	lines := []string{
		"User-agent: *",
		"Allow: /",
		"Disallow: " + DisallowedPrefix,
		"Sitemap: " + origin + SitemapPath,
	}

	return strings.Join(lines, "\n") + "\n"
}

// Handler writes the crawler policy for the origin in info. The output
// depends on per-request headers, so it must not be cached.
func Handler(w http.ResponseWriter, info requestinfo.Info) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, Document(Origin(info)))
}
