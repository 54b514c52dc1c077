package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/mabego/admingate/internal/guard"
	"github.com/mabego/admingate/internal/models"
	"github.com/mabego/admingate/internal/robots"
	"github.com/mabego/admingate/internal/validator"
)

// bcrypt ignores anything past 72 bytes.
const PasswordMaxChars = 72

// The struct tags tell the go-playground/form decoder how to map HTML form values into the different struct fields.
// The struct tag `form:"-"` tells the decoder to completely ignore a field during decoding.
type adminLoginForm struct {
	Password            string `form:"password"`
	validator.Validator `form:"-"`
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	app.render(w, http.StatusOK, "home.page.tmpl", data)
}

func (app *application) robotsTxt(w http.ResponseWriter, r *http.Request) {
	robots.Handler(w, app.requestInfo(r))
}

func (app *application) adminHome(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.CrawlerPolicy = robots.Document(robots.Origin(app.requestInfo(r)))

	app.render(w, http.StatusOK, "admin.page.tmpl", data)
}

func (app *application) adminLogin(w http.ResponseWriter, r *http.Request) {
	data := app.newTemplateData(r)
	data.Form = adminLoginForm{}
	app.render(w, http.StatusOK, "login.page.tmpl", data)
}

func (app *application) adminLoginPost(w http.ResponseWriter, r *http.Request) {
	var form adminLoginForm

	err := app.decodePostForm(r, &form)
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	form.CheckField(validator.NotBlank(form.Password), "password", "This field cannot be blank")
	form.CheckField(validator.MaxChars(form.Password, PasswordMaxChars), "password",
		fmt.Sprintf("This field cannot be more than %d characters long", PasswordMaxChars))

	if !form.Valid() {
		data := app.newTemplateData(r)
		data.Form = form
		app.render(w, http.StatusUnprocessableEntity, "login.page.tmpl", data)
		return
	}

	err = app.admins.Authenticate(form.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			app.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("failed admin sign in")

			form.AddNonFieldError("Password is incorrect")
			data := app.newTemplateData(r)
			data.Form = form
			app.render(w, http.StatusUnprocessableEntity, "login.page.tmpl", data)
		} else {
			app.serverError(w, err)
		}
		return
	}

	token, err := app.tokens.Mint()
	if err != nil {
		app.serverError(w, err)
		return
	}

	// RenewToken changes the flash session ID along with the change in authentication state.
	err = app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	http.SetCookie(w, app.tokens.Cookie(token))
	app.sessionManager.Put(r.Context(), "flash", "You are signed in.")

	app.logger.Info().Str("remote_addr", r.RemoteAddr).Msg("admin signed in")

	http.Redirect(w, r, guard.AdminHome, http.StatusSeeOther)
}

func (app *application) adminLogoutPost(w http.ResponseWriter, r *http.Request) {
	err := app.sessionManager.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	http.SetCookie(w, app.tokens.Expired())
	app.sessionManager.Put(r.Context(), "flash", "You've been signed out.")

	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

func ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodGet {
		fmt.Fprintln(w, "OK")
	}
}
