// Package requestinfo captures the parts of an incoming request that the
// admin guards and the crawler policy look at.
package requestinfo

import (
	"net/http"
	"strings"
)

// Info is a read-only snapshot of a single request. It is built once per
// request and passed by value; nothing in it refers back to the request.
type Info struct {
	Path           string
	ForwardedProto string
	ForwardedHost  string
	Host           string
	URLHost        string
	SessionToken   string
}

// FromRequest builds an Info from r, reading the session token from the
// cookie named cookieName.
func FromRequest(r *http.Request, cookieName string) Info {
	info := Info{
		Path:           r.URL.Path,
		ForwardedProto: firstValue(r.Header.Get("X-Forwarded-Proto")),
		ForwardedHost:  firstValue(r.Header.Get("X-Forwarded-Host")),
		Host:           r.Host,
		URLHost:        r.URL.Host,
	}

	// r.Cookie only fails with http.ErrNoCookie; a cookie that could not be
	// parsed never shows up, so both cases leave the token empty.
	if cookie, err := r.Cookie(cookieName); err == nil {
		info.SessionToken = cookie.Value
	}

	return info
}

// HasSessionToken reports whether the request carried a non-empty session
// cookie. The value itself is never inspected.
func (i Info) HasSessionToken() bool {
	return i.SessionToken != ""
}

// firstValue returns the first element of a comma separated header value,
// as appended by chained proxies.
func firstValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}
