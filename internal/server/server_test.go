package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairplay/duoquiz/internal/database"
	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/engine"
	"github.com/pairplay/duoquiz/internal/gamestore"
	"github.com/pairplay/duoquiz/internal/migrations"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Run(db))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := gamestore.New(db)
	svc := engine.NewService(store, logger)

	r := chi.NewRouter()
	addRoutes(r, logger, db, store, svc)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

// doJSON performs a request with an optional bearer token and decodes the
// response body into out when out is non-nil.
func doJSON(t *testing.T, method, url, token string, body, out any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createTestGame(t *testing.T, ts *httptest.Server, mode string) GameSessionResponse {
	t.Helper()
	var created GameSessionResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/games", "", CreateGameRequest{
		PlayerName: "ana",
		Mode:       mode,
	}, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return created
}

func joinTestGame(t *testing.T, ts *httptest.Server, roomCode string) GameSessionResponse {
	t.Helper()
	var joined GameSessionResponse
	resp := doJSON(t, http.MethodPost, ts.URL+"/api/games/join", "", JoinGameRequest{
		RoomCode:   roomCode,
		PlayerName: "bruno",
	}, &joined)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return joined
}

func TestHandleHealth(t *testing.T) {
	ts := newTestServer(t)

	var health HealthResponse
	resp := doJSON(t, http.MethodGet, ts.URL+"/healthz", "", nil, &health)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.Checks["sqlite"])
}

func TestHandleOpenAPI(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/openapi.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"openapi": "3.1.0"`)
	assert.Contains(t, string(body), "/healthz")
	assert.Contains(t, string(body), "/api/games/{gameID}/answer")
}

func TestCreateGameValidation(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/games", "", CreateGameRequest{
		PlayerName: "  ",
		Mode:       "competitive",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, ts.URL+"/api/games", "", CreateGameRequest{
		PlayerName: "ana",
		Mode:       "speedrun",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestJoinUnknownRoomCode(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/games/join", "", JoinGameRequest{
		RoomCode:   "ZZZZZZ",
		PlayerName: "bruno",
	}, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestJoinNormalizesRoomCode(t *testing.T) {
	ts := newTestServer(t)
	created := createTestGame(t, ts, "competitive")

	joined := joinTestGame(t, ts, strings.ToLower(created.Game.RoomCode))
	assert.Len(t, joined.Game.Players, 2)
}

func TestSessionRequired(t *testing.T) {
	ts := newTestServer(t)
	created := createTestGame(t, ts, "competitive")

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/games/"+created.Game.ID+"/state", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/games/"+created.Game.ID+"/state", "not-a-token", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSessionBoundToGame(t *testing.T) {
	ts := newTestServer(t)
	first := createTestGame(t, ts, "competitive")
	second := createTestGame(t, ts, "competitive")

	// A token for one game cannot touch another.
	resp := doJSON(t, http.MethodGet, ts.URL+"/api/games/"+second.Game.ID+"/state", first.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCompetitiveFlow(t *testing.T) {
	ts := newTestServer(t)

	host := createTestGame(t, ts, "competitive")
	gameURL := ts.URL + "/api/games/" + host.Game.ID
	guest := joinTestGame(t, ts, host.Game.RoomCode)

	// Starting before both players are ready fails.
	resp := doJSON(t, http.MethodPost, gameURL+"/start", host.Token, nil, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = doJSON(t, http.MethodPost, gameURL+"/ready", host.Token, ReadyRequest{Ready: true}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp = doJSON(t, http.MethodPost, gameURL+"/ready", guest.Token, ReadyRequest{Ready: true}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Only the host may start.
	resp = doJSON(t, http.MethodPost, gameURL+"/start", guest.Token, nil, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var started duoquiz.Game
	resp = doJSON(t, http.MethodPost, gameURL+"/start", host.Token, nil, &started)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, duoquiz.StatusPlaying, started.Status)
	require.NotEmpty(t, started.Questions)

	option := started.Questions[0].Options[0].ID

	var firstAnswer AnswerResponse
	resp = doJSON(t, http.MethodPost, gameURL+"/answer", host.Token, AnswerRequest{
		QuestionIndex: 0,
		OptionID:      option,
		TimeSpent:     3,
	}, &firstAnswer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, firstAnswer.Scored)

	var secondAnswer AnswerResponse
	resp = doJSON(t, http.MethodPost, gameURL+"/answer", guest.Token, AnswerRequest{
		QuestionIndex: 0,
		OptionID:      option,
		TimeSpent:     5,
	}, &secondAnswer)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, secondAnswer.Scored)
	assert.True(t, secondAnswer.Answer.IsCorrect)
	assert.Equal(t, 1, secondAnswer.Game.CurrentQuestionIndex)

	// Replaying the question is a conflict.
	resp = doJSON(t, http.MethodPost, gameURL+"/answer", host.Token, AnswerRequest{
		QuestionIndex: 0,
		OptionID:      option,
		TimeSpent:     3,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Compatibility is available mid-game.
	var compat engine.Compatibility
	resp = doJSON(t, http.MethodGet, gameURL+"/compatibility", host.Token, nil, &compat)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, compat.Compared)
	assert.InDelta(t, 100.0, compat.OverallPercent, 1e-9)
}

func TestPredictionFlow(t *testing.T) {
	ts := newTestServer(t)

	host := createTestGame(t, ts, "prediction")
	gameURL := ts.URL + "/api/games/" + host.Game.ID
	guest := joinTestGame(t, ts, host.Game.RoomCode)

	doJSON(t, http.MethodPost, gameURL+"/ready", host.Token, ReadyRequest{Ready: true}, nil)
	doJSON(t, http.MethodPost, gameURL+"/ready", guest.Token, ReadyRequest{Ready: true}, nil)

	var started duoquiz.Game
	resp := doJSON(t, http.MethodPost, gameURL+"/start", host.Token, nil, &started)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, started.PredictionPairings, duoquiz.TotalQuestions)

	option := started.Questions[0].Options[0].ID

	// Guessing before the partner answered is a conflict.
	resp = doJSON(t, http.MethodPost, gameURL+"/prediction/guess", guest.Token, PredictionGuessRequest{
		QuestionIndex: 0,
		OptionID:      option,
		TimeSpent:     4,
	}, nil)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	// Question 0 is answered by the host.
	resp = doJSON(t, http.MethodPost, gameURL+"/prediction/answer", host.Token, PredictionAnswerRequest{
		QuestionIndex: 0,
		OptionID:      option,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var guess PredictionGuessResponse
	resp = doJSON(t, http.MethodPost, gameURL+"/prediction/guess", guest.Token, PredictionGuessRequest{
		QuestionIndex: 0,
		OptionID:      option,
		TimeSpent:     4,
	}, &guess)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, guess.IsCorrect)
	assert.Positive(t, guess.PointsAwarded)
	assert.Equal(t, 1, guess.Game.CurrentQuestionIndex)
}

func TestCustomFlow(t *testing.T) {
	ts := newTestServer(t)

	host := createTestGame(t, ts, "custom")
	gameURL := ts.URL + "/api/games/" + host.Game.ID
	guest := joinTestGame(t, ts, host.Game.RoomCode)

	doJSON(t, http.MethodPost, gameURL+"/ready", host.Token, ReadyRequest{Ready: true}, nil)
	doJSON(t, http.MethodPost, gameURL+"/ready", guest.Token, ReadyRequest{Ready: true}, nil)
	resp := doJSON(t, http.MethodPost, gameURL+"/start", host.Token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var asked CustomQuestionResponse
	resp = doJSON(t, http.MethodPost, gameURL+"/custom/ask", host.Token, CustomAskRequest{
		Text: "What's my favorite dish?",
	}, &asked)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, asked.Question.ID)
	assert.Equal(t, guest.PlayerID, asked.Question.MustAnswer)

	questionURL := gameURL + "/custom/" + asked.Question.ID

	resp = doJSON(t, http.MethodPost, questionURL+"/answer", guest.Token, CustomAnswerRequest{
		Text: "pasta",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// An invalid judgment is a bad request.
	resp = doJSON(t, http.MethodPost, questionURL+"/judge", host.Token, CustomJudgeRequest{
		Judgment: "brilliant",
	}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var judged CustomQuestionResponse
	resp = doJSON(t, http.MethodPost, questionURL+"/judge", host.Token, CustomJudgeRequest{
		Judgment: "correct",
	}, &judged)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, duoquiz.JudgmentCorrect, judged.Question.Judgment)
	assert.Equal(t, 10, judged.Question.PointsAwarded)
	assert.Equal(t, 10, judged.Game.PlayerByID(guest.PlayerID).Score)

	// Judging twice is a conflict.
	resp = doJSON(t, http.MethodPost, questionURL+"/judge", host.Token, CustomJudgeRequest{
		Judgment: "incorrect",
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLeaveDeletesEmptyGame(t *testing.T) {
	ts := newTestServer(t)
	created := createTestGame(t, ts, "competitive")
	gameURL := ts.URL + "/api/games/" + created.Game.ID

	resp := doJSON(t, http.MethodPost, gameURL+"/leave", created.Token, nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The game row is gone and the session cascaded with it.
	resp = doJSON(t, http.MethodGet, gameURL+"/state", created.Token, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
