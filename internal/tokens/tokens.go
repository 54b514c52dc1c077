// Package tokens mints the opaque value stored in the admin session cookie.
//
// Tokens are encrypted and signed with securecookie so that they carry no
// readable data, but nothing in this module decodes them: the guards only
// check that the cookie is present.
package tokens

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"github.com/jonboulle/clockwork"
)

// Lifetime is how long the browser keeps the admin session cookie.
const Lifetime = 12 * time.Hour

type payload struct {
	ID       string
	IssuedAt int64
}

type Minter struct {
	name   string
	secure bool
	sc     *securecookie.SecureCookie
	clock  clockwork.Clock
}

// New returns a Minter for the cookie called name. Nil keys are replaced
// with random ones, which invalidates outstanding tokens on restart.
func New(name string, hashKey, blockKey []byte, secure bool, clock clockwork.Clock) *Minter {
	if hashKey == nil {
		hashKey = securecookie.GenerateRandomKey(64)
	}
	if blockKey == nil {
		blockKey = securecookie.GenerateRandomKey(32)
	}

	sc := securecookie.New(hashKey, blockKey)
	sc.MaxAge(int(Lifetime.Seconds()))

	return &Minter{
		name:   name,
		secure: secure,
		sc:     sc,
		clock:  clock,
	}
}

// Mint returns a fresh token value.
func (m *Minter) Mint() (string, error) {
	p := payload{
		ID:       uuid.NewString(),
		IssuedAt: m.clock.Now().Unix(),
	}

	encoded, err := m.sc.Encode(m.name, p)
	if err != nil {
		return "", fmt.Errorf("can't encode session token: %w", err)
	}

	return encoded, nil
}

// Cookie wraps value in the admin session cookie.
func (m *Minter) Cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		Expires:  m.clock.Now().Add(Lifetime),
		MaxAge:   int(Lifetime.Seconds()),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Expired returns a cookie that makes the browser drop the admin session.
func (m *Minter) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     m.name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
