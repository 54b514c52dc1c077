package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "http://internal:8080/admin/users?page=2", nil)
	r.Host = "internal:8080"
	r.Header.Set("X-Forwarded-Proto", "https")
	r.Header.Set("X-Forwarded-Host", "example.com, proxy.local")
	r.AddCookie(&http.Cookie{Name: "admin_session", Value: "opaque"})

	info := FromRequest(r, "admin_session")

	assert.Equal(t, "/admin/users", info.Path)
	assert.Equal(t, "https", info.ForwardedProto)
	assert.Equal(t, "example.com", info.ForwardedHost)
	assert.Equal(t, "internal:8080", info.Host)
	assert.Equal(t, "internal:8080", info.URLHost)
	assert.Equal(t, "opaque", info.SessionToken)
	assert.True(t, info.HasSessionToken())
}

func TestFromRequestWithoutCookie(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{name: "Absent"},
		{name: "Empty", cookie: &http.Cookie{Name: "admin_session", Value: ""}},
		{name: "Other name", cookie: &http.Cookie{Name: "site_session", Value: "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}

			info := FromRequest(r, "admin_session")
			assert.False(t, info.HasSessionToken())
		})
	}
}
