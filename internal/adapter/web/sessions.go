package web

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/couchcryptid/creek-quality-dashboard/internal/dashboard"
)

const sessionCookie = "creek_session"

// sessionStore creates and resolves per-browser dashboard sessions by
// cookie. Session lifetime is the process lifetime; there is no eviction
// since the expected audience is a handful of monitors.
type sessionStore struct {
	app *dashboard.App

	mu       sync.Mutex
	sessions map[string]*dashboard.Session
}

func newSessionStore(app *dashboard.App) *sessionStore {
	return &sessionStore{
		app:      app,
		sessions: make(map[string]*dashboard.Session),
	}
}

// resolve returns the request's session, creating one (and setting the
// cookie) when the request carries none or an unknown ID.
func (st *sessionStore) resolve(w http.ResponseWriter, r *http.Request) *dashboard.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		st.mu.Lock()
		if sess, ok := st.sessions[c.Value]; ok {
			st.mu.Unlock()
			return sess
		}
		st.mu.Unlock()
	}

	id := newSessionID()
	sess := st.app.NewSession()

	st.mu.Lock()
	st.sessions[id] = sess
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func newSessionID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err) // crypto/rand never fails on supported platforms
	}
	return hex.EncodeToString(b[:])
}
