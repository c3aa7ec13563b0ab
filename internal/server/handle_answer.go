package server

import (
	"net/http"

	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/engine"
)

type AnswerRequest struct {
	QuestionIndex int     `json:"questionIndex"`
	OptionID      string  `json:"optionId"`
	TimeSpent     float64 `json:"timeSpent"`
}

type AnswerResponse struct {
	Answer       duoquiz.Answer `json:"answer"`
	Scored       bool           `json:"scored"`
	GameComplete bool           `json:"gameComplete"`
	Game         *duoquiz.Game  `json:"game"`
}

// handleAnswer is the competitive-mode submission endpoint. Scoring, if this
// was the second answer of the pair, already happened inside the engine's
// transaction by the time we respond.
func handleAnswer(svc *engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req AnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.OptionID == "" {
			writeError(w, http.StatusBadRequest, "optionId is required")
			return
		}
		if req.TimeSpent < 0 {
			writeError(w, http.StatusBadRequest, "timeSpent must not be negative")
			return
		}

		result, err := svc.SubmitAnswer(r.Context(), sess.GameID, sess.PlayerID, req.QuestionIndex, req.OptionID, req.TimeSpent)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, AnswerResponse{
			Answer:       result.Answer,
			Scored:       result.Scored,
			GameComplete: result.GameComplete,
			Game:         result.Game,
		})
	}
}
