package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

const SESSION_COOKIE_NAME = "bus_session"

// sessionID returns the caller's session id, issuing a new cookie when the
// request carries none or an invalid one.
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SESSION_COOKIE_NAME); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SESSION_COOKIE_NAME,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
