package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "DuoQuiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the DuoQuiz two-player quiz game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Create game")
	createGame.SetDescription("Creates a game in the chosen mode with the caller as host. Returns a session token and the room code to share.")
	createGame.AddReqStructure(CreateGameRequest{})
	createGame.AddRespStructure(GameSessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	createGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(createGame)

	// POST /api/games/join
	joinGame, _ := r.NewOperationContext(http.MethodPost, "/api/games/join")
	joinGame.SetSummary("Join game")
	joinGame.SetDescription("Joins the waiting game bound to a room code. Returns a session token.")
	joinGame.AddReqStructure(JoinGameRequest{})
	joinGame.AddRespStructure(GameSessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	joinGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	joinGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(joinGame)

	// GET /api/games/{gameID}/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the full game document. Requires Bearer token.")
	getState.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// POST /api/games/{gameID}/ready
	setReady, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/ready")
	setReady.SetSummary("Set ready")
	setReady.SetDescription("Flips the caller's ready flag while waiting.")
	setReady.AddReqStructure(ReadyRequest{})
	setReady.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	setReady.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(setReady)

	// POST /api/games/{gameID}/start
	startGame, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/start")
	startGame.SetSummary("Start game")
	startGame.SetDescription("Host-only. Requires two ready players.")
	startGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	startGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(startGame)

	// POST /api/games/{gameID}/leave
	leaveGame, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/leave")
	leaveGame.SetSummary("Leave game")
	leaveGame.SetDescription("Removes the caller. The host role is handed over; an emptied game is deleted.")
	leaveGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	leaveGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(leaveGame)

	// POST /api/games/{gameID}/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/answer")
	postAnswer.SetSummary("Submit competitive answer")
	postAnswer.SetDescription("Submits an answer for the current question. When both players have answered, the question is scored exactly once and the turn advances.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAnswer)

	// POST /api/games/{gameID}/prediction/answer
	postOriginal, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/prediction/answer")
	postOriginal.SetSummary("Submit real answer (prediction mode)")
	postOriginal.SetDescription("The answering player's actual choice. Notifies the guessing player; no points are awarded.")
	postOriginal.AddReqStructure(PredictionAnswerRequest{})
	postOriginal.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postOriginal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postOriginal.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postOriginal)

	// POST /api/games/{gameID}/prediction/guess
	postGuess, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/prediction/guess")
	postGuess.SetSummary("Submit prediction (prediction mode)")
	postGuess.SetDescription("The guessing player's prediction of the partner's choice. Valid only once the partner has answered.")
	postGuess.AddReqStructure(PredictionGuessRequest{})
	postGuess.AddRespStructure(PredictionGuessResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postGuess.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postGuess)

	// POST /api/games/{gameID}/custom/ask
	postAsk, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/custom/ask")
	postAsk.SetSummary("Ask a custom question")
	postAsk.SetDescription("Authors a free-text question the other player must answer. Subject to the per-game and per-player caps and the turn gating.")
	postAsk.AddReqStructure(CustomAskRequest{})
	postAsk.AddRespStructure(CustomQuestionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postAsk.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postAsk)

	// POST /api/games/{gameID}/custom/{questionID}/answer
	postCustomAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/custom/{questionID}/answer")
	postCustomAnswer.SetSummary("Answer a custom question")
	postCustomAnswer.SetDescription("The bound responder's free-text answer. Allowed once.")
	postCustomAnswer.AddReqStructure(CustomAnswerRequest{})
	postCustomAnswer.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	postCustomAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postCustomAnswer)

	// POST /api/games/{gameID}/custom/{questionID}/judge
	postJudge, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/custom/{questionID}/judge")
	postJudge.SetSummary("Judge a custom answer")
	postJudge.SetDescription("The asker's verdict: correct (10 points), almost (5) or incorrect (0), credited to the responder.")
	postJudge.AddReqStructure(CustomJudgeRequest{})
	postJudge.AddRespStructure(CustomQuestionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postJudge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusForbidden))
	postJudge.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(postJudge)

	// GET /api/games/{gameID}/compatibility
	getCompat, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/compatibility")
	getCompat.SetSummary("Compatibility statistics")
	getCompat.SetDescription("Overall and per-category match percentages over the questions both players answered.")
	getCompat.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCompat)

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of committed game documents and notifications. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/games/{gameID}/ws
	getWS, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/ws")
	getWS.SetSummary("WebSocket event stream")
	getWS.SetDescription("Same events as the SSE stream over a WebSocket. Pass token as query parameter.")
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
