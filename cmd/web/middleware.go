package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/justinas/nosurf"

	"github.com/mabego/admingate/internal/guard"
	"github.com/mabego/admingate/internal/requestinfo"
)

var ErrRecovered = errors.New("recovered")

func secureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Referrer-Policy", "origin-when-cross-origin")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "deny")
		w.Header().Set("X-XSS-Protection", "0")

		next.ServeHTTP(w, r)
	})
}

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.logger.Info().
			Str("remote_addr", r.RemoteAddr).
			Str("proto", r.Proto).
			Str("method", r.Method).
			Str("uri", r.URL.RequestURI()).
			Msg("request")

		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A deferred function will run in the event of a panic as Go unwinds the stack.
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%w: %s", ErrRecovered, err))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// withRequestInfo snapshots the request once so that the gate, the layouts and the handlers
// all look at the same cookie and header values.
func (app *application) withRequestInfo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := requestinfo.FromRequest(r, guard.SessionCookieName)
		ctx := context.WithValue(r.Context(), requestInfoContextKey, info)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (app *application) edgeGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A redirect ends the request here; no later handler in the chain runs.
		if d := guard.EdgeGate(app.requestInfo(r)); d.Redirected() {
			app.logger.Debug().Str("path", r.URL.Path).Str("target", d.Target).Msg("edge gate redirect")
			http.Redirect(w, r, d.Target, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// adminLayout wraps pages of the admin area. It runs on every render and marks the output
// "Cache-Control: no-store" so a cached page can never stand in for the cookie check.
func (app *application) adminLayout(page http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		if d := guard.ProtectedArea(app.requestInfo(r)); d.Redirected() {
			http.Redirect(w, r, d.Target, http.StatusSeeOther)
			return
		}

		page(w, r)
	}
}

// loginLayout wraps the login page and sends visitors with a session to the admin home.
func (app *application) loginLayout(page http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")

		if d := guard.LoginArea(app.requestInfo(r)); d.Redirected() {
			http.Redirect(w, r, d.Target, http.StatusSeeOther)
			return
		}

		page(w, r)
	}
}

func (app *application) noSurf(next http.Handler) http.Handler {
	csrfHandler := nosurf.New(next)
	csrfHandler.SetBaseCookie(http.Cookie{
		Path:     "/",
		Secure:   app.secureCookies,
		HttpOnly: true,
	})

	return csrfHandler
}
