// Package guard decides whether a request may reach the admin area.
//
// Every check looks only at whether the admin session cookie is present.
// The token is opaque here and is never validated. Each check returns a
// Decision that the caller applies to the response.
package guard

import (
	"strings"

	"github.com/mabego/admingate/internal/requestinfo"
)

const (
	SessionCookieName = "admin_session"
	AdminPrefix       = "/admin"
	AdminHome         = "/admin"
	LoginPath         = "/admin/login"
)

// Action is what the caller should do with the request.
type Action int

const (
	Continue Action = iota
	Redirect
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of a guard. Target is only set for Redirect.
type Decision struct {
	Action Action
	Target string
}

func proceed() Decision {
	return Decision{Action: Continue}
}

func redirectTo(target string) Decision {
	return Decision{Action: Redirect, Target: target}
}

// Redirected reports whether the decision ends the request with a redirect.
func (d Decision) Redirected() bool {
	return d.Action == Redirect
}

// InAdminArea reports whether path is the admin prefix itself or lies below it.
// "/administrator" is not part of the admin area.
func InAdminArea(path string) bool {
	return path == AdminPrefix || strings.HasPrefix(path, AdminPrefix+"/")
}

// EdgeGate runs ahead of routing. Admin paths other than the login page
// require a session token; everything else passes through untouched.
func EdgeGate(info requestinfo.Info) Decision {
	if !InAdminArea(info.Path) || info.Path == LoginPath {
		return proceed()
	}

	if !info.HasSessionToken() {
		return redirectTo(LoginPath)
	}

	return proceed()
}

// ProtectedArea is evaluated by the admin page layout at render time,
// independently of EdgeGate.
func ProtectedArea(info requestinfo.Info) Decision {
	if !info.HasSessionToken() {
		return redirectTo(LoginPath)
	}

	return proceed()
}

// LoginArea is evaluated by the login page layout. A visitor who already
// holds a session token is sent to the admin home instead.
func LoginArea(info requestinfo.Info) Decision {
	if info.HasSessionToken() {
		return redirectTo(AdminHome)
	}

	return proceed()
}
