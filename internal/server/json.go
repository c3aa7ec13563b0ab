package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses.
// Validation errors surface with their own message; anything unrecognized is
// a storage-layer failure the caller may retry.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, duoquiz.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, duoquiz.ErrNotHost),
		errors.Is(err, duoquiz.ErrNotAuthorized):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, duoquiz.ErrInvalidJudgment):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, duoquiz.ErrGameFull),
		errors.Is(err, duoquiz.ErrAlreadyJoined),
		errors.Is(err, duoquiz.ErrInsufficientPlayers),
		errors.Is(err, duoquiz.ErrNotAllReady),
		errors.Is(err, duoquiz.ErrWrongGameMode),
		errors.Is(err, duoquiz.ErrDuplicateSubmission),
		errors.Is(err, duoquiz.ErrPartnerNotAnswered),
		errors.Is(err, duoquiz.ErrAlreadyAnswered),
		errors.Is(err, duoquiz.ErrAlreadyJudged),
		errors.Is(err, duoquiz.ErrAlreadyStarted),
		errors.Is(err, duoquiz.ErrGameNotActive),
		errors.Is(err, duoquiz.ErrQuestionLimitReached),
		errors.Is(err, duoquiz.ErrNotYourTurnToAsk):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
