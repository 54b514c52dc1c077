package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-playground/form/v4"
	"github.com/justinas/nosurf"

	"github.com/mabego/admingate/internal/guard"
	"github.com/mabego/admingate/internal/requestinfo"
)

var ErrNoTmpl = errors.New("template does not exist")

// serverError helper logs the error with a stack trace,
// then sends a generic 500 Internal Server Error response to the user.
func (app *application) serverError(w http.ResponseWriter, err error) {
	stack := debug.Stack()
	app.logger.Error().Err(err).Bytes("stack", stack).Msg("server error")

	trace := fmt.Sprintf("%s\n%s", err.Error(), stack)

	if app.debug {
		http.Error(w, trace, http.StatusInternalServerError)
		return
	}

	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// clientError helper sends a specific status code and its description to the user.
func (app *application) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// notFound helper is a wrapper around clientError that sends a 404 Not Found response to the user.
func (app *application) notFound(w http.ResponseWriter) {
	app.clientError(w, http.StatusNotFound)
}

func (app *application) render(w http.ResponseWriter, status int, page string, data *templateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrNoTmpl, page)
		app.serverError(w, err)
		return
	}

	buf := new(bytes.Buffer)

	// Execute the template set into a buffer so that a template error can still become a 500.
	err := ts.ExecuteTemplate(buf, "base", data)
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.WriteHeader(status)

	_, err = buf.WriteTo(w)
	if err != nil {
		app.logger.Error().Err(err).Str("page", page).Msg("writing response")
	}
}

func (app *application) newTemplateData(r *http.Request) *templateData {
	now := app.clock.Now()

	return &templateData{
		IsAdmin:     app.requestInfo(r).HasSessionToken(),
		CurrentYear: now.Year(),
		Now:         now,
		Flash:       app.sessionManager.PopString(r.Context(), "flash"),
		CSRFToken:   nosurf.Token(r),
	}
}

func (app *application) decodePostForm(r *http.Request, dst any) error {
	err := r.ParseForm()
	if err != nil {
		return err
	}

	err = app.formDecoder.Decode(dst, r.PostForm)
	if err != nil {
		// Check for a non-nil pointer through the error InvalidDecoderError
		var invalidDecoderError *form.InvalidDecoderError

		if errors.As(err, &invalidDecoderError) {
			panic(err)
		}

		return fmt.Errorf("form decoding error: %w", err)
	}

	return nil
}

// requestInfo returns the snapshot stored by withRequestInfo, or takes one now when the
// handler runs outside the standard chain.
func (app *application) requestInfo(r *http.Request) requestinfo.Info {
	info, ok := r.Context().Value(requestInfoContextKey).(requestinfo.Info)
	if !ok {
		return requestinfo.FromRequest(r, guard.SessionCookieName)
	}

	return info
}
