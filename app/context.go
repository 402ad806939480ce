package main

import "net/http"

// resolveSession derives the pseudo-anonymous session identity for the
// request. The identity is a keyed hash of connection attributes, never
// a cookie, so there is nothing for the client to manage or clear.
func (app *application) resolveSession(r *http.Request) string {
	return app.sessions.Resolve(
		r.RemoteAddr,
		r.Header.Get("X-Forwarded-For"),
		r.Header.Get("X-Real-IP"),
		r.Header.Get("User-Agent"),
	)
}
