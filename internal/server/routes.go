package server

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/engine"
	"github.com/pairplay/duoquiz/internal/gamestore"
)

func addRoutes(r chi.Router, logger *slog.Logger, db *sql.DB, store *gamestore.Store, svc *engine.Service) {
	broker := NewBroker()

	// Every committed write fans the full document out to subscribers.
	store.Notify = func(g *duoquiz.Game) {
		broker.Publish(g.ID, Event{Type: EventState, Game: g})
	}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("DuoQuiz API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, db))

	r.Route("/api/games", func(r chi.Router) {
		r.Post("/", handleCreateGame(svc, store))
		r.Post("/join", handleJoinGame(svc, store))

		// Session-bound operations. {gameID} must match the token's game.
		r.Route("/{gameID}", func(r chi.Router) {
			r.Use(sessionMiddleware(store))
			r.Get("/state", handleGameState(store))
			r.Post("/ready", handleReady(svc))
			r.Post("/start", handleStart(svc))
			r.Post("/leave", handleLeave(svc))

			r.Post("/answer", handleAnswer(svc))
			r.Post("/prediction/answer", handlePredictionAnswer(svc, broker))
			r.Post("/prediction/guess", handlePredictionGuess(svc))

			r.Post("/custom/ask", handleCustomAsk(svc))
			r.Post("/custom/{questionID}/answer", handleCustomAnswer(svc))
			r.Post("/custom/{questionID}/judge", handleCustomJudge(svc, broker))

			r.Get("/compatibility", handleCompatibility(store))
			r.Get("/events", handleEvents(broker))
			r.Get("/ws", handleWS(logger, broker))
		})
	})
}
