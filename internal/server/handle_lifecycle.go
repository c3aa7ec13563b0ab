package server

import (
	"net/http"
	"strings"

	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/engine"
	"github.com/pairplay/duoquiz/internal/gamestore"
)

type CreateGameRequest struct {
	PlayerName string `json:"playerName"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
	Mode       string `json:"mode"`
}

type GameSessionResponse struct {
	Token    string        `json:"token"`
	PlayerID string        `json:"playerId"`
	Game     *duoquiz.Game `json:"game"`
}

func handleCreateGame(svc *engine.Service, store *gamestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.PlayerName = strings.TrimSpace(req.PlayerName)
		if req.PlayerName == "" || req.Mode == "" {
			writeError(w, http.StatusBadRequest, "playerName and mode are required")
			return
		}

		game, err := svc.CreateGame(r.Context(), engine.PlayerProfile{
			Name:      req.PlayerName,
			AvatarURL: req.AvatarURL,
		}, duoquiz.GameMode(req.Mode))
		if err != nil {
			writeEngineError(w, err)
			return
		}

		token, err := store.CreateSession(r.Context(), game.ID, game.HostID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, GameSessionResponse{
			Token:    token,
			PlayerID: game.HostID,
			Game:     game,
		})
	}
}

type JoinGameRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

func handleJoinGame(svc *engine.Service, store *gamestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req JoinGameRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.PlayerName = strings.TrimSpace(req.PlayerName)
		if req.PlayerName == "" || req.RoomCode == "" {
			writeError(w, http.StatusBadRequest, "roomCode and playerName are required")
			return
		}

		game, playerID, err := svc.JoinGame(r.Context(), strings.ToUpper(req.RoomCode), engine.PlayerProfile{
			Name:      req.PlayerName,
			AvatarURL: req.AvatarURL,
		})
		if err != nil {
			writeEngineError(w, err)
			return
		}

		token, err := store.CreateSession(r.Context(), game.ID, playerID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, GameSessionResponse{
			Token:    token,
			PlayerID: playerID,
			Game:     game,
		})
	}
}

func handleGameState(store *gamestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)
		game, err := store.Get(r.Context(), sess.GameID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

type ReadyRequest struct {
	Ready bool `json:"ready"`
}

func handleReady(svc *engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		var req ReadyRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		game, err := svc.SetReady(r.Context(), sess.GameID, sess.PlayerID, req.Ready)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

func handleStart(svc *engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		game, err := svc.StartGame(r.Context(), sess.GameID, sess.PlayerID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}

func handleLeave(svc *engine.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := sessionFrom(r)

		game, err := svc.LeaveGame(r.Context(), sess.GameID, sess.PlayerID)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, game)
	}
}
