package tokens

import (
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hashKey  = []byte("0123456789abcdef0123456789abcdef")
	blockKey = []byte("fedcba9876543210fedcba9876543210")
)

func TestMint(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	clock := clockwork.NewFakeClockAt(now)
	m := New("admin_session", hashKey, blockKey, true, clock)

	first, err := m.Mint()
	require.NoError(t, err)
	second, err := m.Mint()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)

	// The payload round-trips for anyone holding the keys.
	var p payload
	sc := securecookie.New(hashKey, blockKey)
	require.NoError(t, sc.Decode("admin_session", first, &p))
	assert.Equal(t, now.Unix(), p.IssuedAt)
	assert.Len(t, p.ID, 36)
}

func TestMintRandomKeys(t *testing.T) {
	m := New("admin_session", nil, nil, false, clockwork.NewRealClock())

	v, err := m.Mint()
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}

func TestCookie(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	m := New("admin_session", hashKey, blockKey, true, clockwork.NewFakeClockAt(now))

	c := m.Cookie("abc")
	assert.Equal(t, "admin_session", c.Name)
	assert.Equal(t, "abc", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.Equal(t, now.Add(Lifetime), c.Expires)
	assert.True(t, c.Secure)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestExpired(t *testing.T) {
	m := New("admin_session", hashKey, blockKey, false, clockwork.NewRealClock())

	c := m.Expired()
	assert.Equal(t, "admin_session", c.Name)
	assert.Empty(t, c.Value)
	assert.Equal(t, -1, c.MaxAge)
	assert.False(t, c.Secure)
}
