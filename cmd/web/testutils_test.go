package main

import (
	"html"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/form/v4"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mabego/admingate/internal/guard"
	"github.com/mabego/admingate/internal/models/mocks"
	"github.com/mabego/admingate/internal/tokens"
)

// csrfTokenRX captures the CSRF token value from a rendered form.
var csrfTokenRX = regexp.MustCompile(`<input type="hidden" name="csrf_token" value="(.+)">`)

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

func extractCSRFToken(t *testing.T, body string) string {
	t.Helper()

	matches := csrfTokenRX.FindStringSubmatch(body)
	if len(matches) < 2 {
		t.Fatal("no csrf token found in body")
	}

	return html.UnescapeString(matches[1])
}

// newTestApplication creates an instance of the application struct with mock data.
func newTestApplication(t *testing.T) *application {
	t.Helper()

	templateCache, err := newTemplateCache()
	if err != nil {
		t.Fatal(err)
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = SessionLifetime
	sessionManager.Cookie.Name = "site_session"
	sessionManager.Cookie.Secure = true

	clock := clockwork.NewFakeClockAt(testNow)

	return &application{
		secureCookies:  true,
		logger:         zerolog.Nop(),
		admins:         &mocks.AdminModel{},
		tokens:         tokens.New(guard.SessionCookieName, nil, nil, true, clock),
		templateCache:  templateCache,
		formDecoder:    form.NewDecoder(),
		sessionManager: sessionManager,
		clock:          clock,
	}
}

// A custom testServer type that embeds an httptest.Server instance.
type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	t.Helper()

	ts := httptest.NewTLSServer(h)
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatal(err)
	}

	// Any response cookies will now be stored and sent with test server client requests.
	ts.Client().Jar = jar

	// Return redirects to the test instead of following them.
	ts.Client().CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}

	return &testServer{ts}
}

// do sends req with the test server client and returns the response status code, headers, and body.
func (ts *testServer) do(t *testing.T, req *http.Request) (int, http.Header, string) {
	t.Helper()

	rs, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer rs.Body.Close()

	body, err := io.ReadAll(rs.Body)
	if err != nil {
		t.Fatal(err)
	}

	return rs.StatusCode, rs.Header, strings.TrimSpace(string(body))
}

// get makes a GET request to a given url path using the test server client.
func (ts *testServer) get(t *testing.T, urlPath string) (int, http.Header, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, ts.URL+urlPath, nil)
	if err != nil {
		t.Fatal(err)
	}

	return ts.do(t, req)
}

// postForm sends a form-encoded POST request to the test server.
func (ts *testServer) postForm(t *testing.T, urlPath string, form url.Values) (int, http.Header, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, ts.URL+urlPath, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return ts.do(t, req)
}

// sessionCookie returns the admin session cookie the client currently holds, if any.
func (ts *testServer) sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()

	u, err := url.Parse(ts.URL)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range ts.Client().Jar.Cookies(u) {
		if c.Name == guard.SessionCookieName {
			return c
		}
	}

	return nil
}
