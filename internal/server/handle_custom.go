package server

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/engine"
)

type CustomAskRequest struct {
	Text string `json:"text"`
}

type CustomQuestionResponse struct {
	Question duoquiz.CustomQuestion `json:"question"`
	Game     *duoquiz.Game          `json:"game"`
}

func handleCustomAsk(svc *engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req CustomAskRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Text = strings.TrimSpace(req.Text)
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		question, game, err := svc.AskQuestion(r.Context(), sess.GameID, sess.PlayerID, req.Text)
		if err != nil {
			writeEngineError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, CustomQuestionResponse{Question: *question, Game: game})
	}
}

type CustomAnswerRequest struct {
	Text string `json:"text"`
}

func handleCustomAnswer(svc *engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		questionID := chi.URLParam(r, "questionID")

		var req CustomAnswerRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.Text = strings.TrimSpace(req.Text)
		if req.Text == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		game, err := svc.AnswerQuestion(r.Context(), sess.GameID, sess.PlayerID, questionID, req.Text)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

type CustomJudgeRequest struct {
	Judgment string `json:"judgment"`
}

func handleCustomJudge(svc *engine.Service, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		questionID := chi.URLParam(r, "questionID")

		var req CustomJudgeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		question, game, err := svc.JudgeAnswer(r.Context(), sess.GameID, sess.PlayerID, questionID, duoquiz.Judgment(req.Judgment))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		broker.Publish(game.ID, Event{
			Type:       EventJudgmentReceived,
			QuestionID: question.ID,
			PlayerID:   question.MustAnswer,
			Judgment:   question.Judgment,
		})

		writeJSON(w, http.StatusOK, CustomQuestionResponse{Question: *question, Game: game})
	}
}
