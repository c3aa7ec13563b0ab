package server

import (
	"net/http"

	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/engine"
)

type PredictionAnswerRequest struct {
	QuestionIndex int    `json:"questionIndex"`
	OptionID      string `json:"optionId"`
}

// handlePredictionAnswer records the answering player's real choice and
// notifies the guessing player that their turn is live.
func handlePredictionAnswer(svc *engine.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req PredictionAnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.OptionID == "" {
			writeError(w, http.StatusBadRequest, "optionId is required")
			return
		}

		game, err := svc.SubmitOriginalAnswer(r.Context(), sess.GameID, sess.PlayerID, req.QuestionIndex, req.OptionID)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		broker.Publish(game.ID, Event{
			Type:          EventPartnerAnswered,
			QuestionIndex: req.QuestionIndex,
			PlayerID:      sess.PlayerID,
		})

		writeJSON(w, http.StatusOK, game)
	}
}

type PredictionGuessRequest struct {
	QuestionIndex int     `json:"questionIndex"`
	OptionID      string  `json:"optionId"`
	TimeSpent     float64 `json:"timeSpent"`
}

type PredictionGuessResponse struct {
	IsCorrect     bool          `json:"isCorrect"`
	PointsAwarded int           `json:"pointsAwarded"`
	GameComplete  bool          `json:"gameComplete"`
	Game          *duoquiz.Game `json:"game"`
}

// handlePredictionGuess records the guess and returns correctness for
// immediate feedback.
func handlePredictionGuess(svc *engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req PredictionGuessRequest
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

		result, err := svc.SubmitPrediction(r.Context(), sess.GameID, sess.PlayerID, req.QuestionIndex, req.OptionID, req.TimeSpent)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, PredictionGuessResponse{
			IsCorrect:     result.IsCorrect,
			PointsAwarded: result.PointsAwarded,
			GameComplete:  result.GameComplete,
			Game:          result.Game,
		})
	}
}
