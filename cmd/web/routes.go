package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"

	"github.com/mabego/admingate/internal/guard"
	"github.com/mabego/admingate/ui"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	// Set the custom handler for 404 responses through httprouter.
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.notFound(w)
	})

	// Use an embedded file system instead of reading files from the disk at runtime.
	fileServer := http.FileServer(http.FS(ui.Files))
	router.Handler(http.MethodGet, "/static/*filepath", fileServer)

	router.HandlerFunc(http.MethodGet, "/ping", ping)
	router.HandlerFunc(http.MethodGet, "/robots.txt", app.robotsTxt)

	// Routes that render pages or accept forms need flash sessions and CSRF protection.
	dynamic := alice.New(app.sessionManager.LoadAndSave, app.noSurf)

	router.Handler(http.MethodGet, "/", dynamic.ThenFunc(app.home))

	// The login page redirects visitors who already hold a session.
	router.Handler(http.MethodGet, guard.LoginPath, dynamic.ThenFunc(app.loginLayout(app.adminLogin)))
	router.Handler(http.MethodPost, guard.LoginPath, dynamic.ThenFunc(app.loginLayout(app.adminLoginPost)))

	// Admin pages re-check the session at render time, independently of the edge gate.
	router.Handler(http.MethodGet, guard.AdminHome, dynamic.ThenFunc(app.adminLayout(app.adminHome)))
	router.Handler(http.MethodPost, "/admin/logout", dynamic.ThenFunc(app.adminLayout(app.adminLogoutPost)))

	// The edge gate sees every request ahead of routing; it only acts on the admin subtree.
	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders, app.withRequestInfo, app.edgeGate)

	return standard.Then(router)
}
