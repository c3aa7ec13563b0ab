package server

import (
	"net/http"

	"github.com/pairplay/duoquiz/internal/engine"
	"github.com/pairplay/duoquiz/internal/gamestore"
)

// handleCompatibility returns the post-hoc compatibility statistics for the
// caller's game. Available at any point; partial games simply compare fewer
// questions.
func handleCompatibility(store *gamestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		game, err := store.Get(r.Context(), sess.GameID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, engine.Analyze(game))
	}
}
