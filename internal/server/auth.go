package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pairplay/duoquiz/internal/gamestore"
)

type ctxKey int

const ctxKeySession ctxKey = iota

// sessionMiddleware resolves the bearer token (or ?token= for the stream
// endpoints, where browsers can't set headers) and checks it belongs to the
// game in the URL.
func sessionMiddleware(store *gamestore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			sess, err := store.SessionLookup(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}
			if sess.GameID != chi.URLParam(r, "gameID") {
				writeError(w, http.StatusForbidden, "token does not belong to this game")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(auth, "Bearer ")
	if !found {
		return ""
	}
	return token
}

func sessionFrom(r *http.Request) gamestore.Session {
	return r.Context().Value(ctxKeySession).(gamestore.Session)
}
