package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/gamestore"
)

// PlayerProfile is the engine-opaque identity a client presents when
// creating or joining a game. ID is optional; a fresh one is minted when
// empty.
type PlayerProfile struct {
	ID        string
	Name      string
	AvatarURL string
}

func newPlayer(profile PlayerProfile) duoquiz.Player {
	id := profile.ID
	if id == "" {
		id = uuid.NewString()
	}
	return duoquiz.Player{
		ID:        id,
		Name:      profile.Name,
		AvatarURL: profile.AvatarURL,
		Answers:   []duoquiz.Answer{},
	}
}

// CreateGame allocates a room code and creates a waiting game with the host
// as its only player. Competitive and prediction games get ten
// server-selected questions; clients never supply question content.
func (s *Service) CreateGame(ctx context.Context, host PlayerProfile, mode duoquiz.GameMode) (*duoquiz.Game, error) {
	switch mode {
	case duoquiz.ModeCompetitive, duoquiz.ModePrediction, duoquiz.ModeCustom:
	default:
		return nil, duoquiz.ErrWrongGameMode
	}

	code, err := s.allocateRoomCode(ctx)
	if err != nil {
		return nil, err
	}

	hostPlayer := newPlayer(host)
	game := &duoquiz.Game{
		ID:              uuid.NewString(),
		RoomCode:        code,
		HostID:          hostPlayer.ID,
		Mode:            mode,
		Status:          duoquiz.StatusWaiting,
		Players:         []duoquiz.Player{hostPlayer},
		MaxPlayers:      duoquiz.MaxPlayers,
		TimePerQuestion: duoquiz.TimePerQuestion,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}

	if mode != duoquiz.ModeCustom {
		game.Questions = drawQuestions(duoquiz.TotalQuestions)
		game.TotalQuestions = len(game.Questions)
	}

	if err := s.store.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("creating game: %w", err)
	}
	s.logger.Info("game created", "game_id", game.ID, "room_code", code, "mode", mode)
	return game, nil
}

// JoinGame adds a player to the waiting game bound to a room code.
func (s *Service) JoinGame(ctx context.Context, code string, profile PlayerProfile) (*duoquiz.Game, string, error) {
	waiting, err := s.store.FindByRoomCode(ctx, code)
	if err != nil {
		return nil, "", err
	}

	player := newPlayer(profile)
	game, err := s.store.Transact(ctx, waiting.ID, func(g *duoquiz.Game) error {
		if g.Status != duoquiz.StatusWaiting {
			return duoquiz.ErrNotFound
		}
		if g.PlayerByID(player.ID) != nil {
			return duoquiz.ErrAlreadyJoined
		}
		if len(g.Players) >= g.MaxPlayers {
			return duoquiz.ErrGameFull
		}
		g.Players = append(g.Players, player)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("player joined", "game_id", game.ID, "player_id", player.ID)
	return game, player.ID, nil
}

// SetReady flips a player's ready flag. Only meaningful while waiting.
func (s *Service) SetReady(ctx context.Context, gameID, playerID string, ready bool) (*duoquiz.Game, error) {
	return s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		p := g.PlayerByID(playerID)
		if p == nil {
			return duoquiz.ErrNotFound
		}
		p.IsReady = ready
		return nil
	})
}

// StartGame moves the game to playing. Host-only; requires both players
// present and ready. The mode strategy's start hook runs inside the same
// transaction (prediction builds its pairings here).
func (s *Service) StartGame(ctx context.Context, gameID, requesterID string) (*duoquiz.Game, error) {
	game, err := s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Status != duoquiz.StatusWaiting {
			return duoquiz.ErrAlreadyStarted
		}
		if requesterID != g.HostID {
			return duoquiz.ErrNotHost
		}
		if len(g.Players) != duoquiz.MaxPlayers {
			return duoquiz.ErrInsufficientPlayers
		}
		for i := range g.Players {
			if !g.Players[i].IsReady {
				return duoquiz.ErrNotAllReady
			}
		}

		now := time.Now().UTC()
		g.Status = duoquiz.StatusPlaying
		g.StartedAt = &now
		g.CurrentQuestionIndex = 0
		strategyFor(g.Mode).onGameStart(g)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("game started", "game_id", game.ID, "mode", game.Mode)
	return game, nil
}

// LeaveGame removes a player. The host role is handed to the remaining
// player; an emptied game is deleted in the same transaction, freeing its
// room code. Leaving never rolls back already-scored questions; if the game
// was in progress the remaining player wins by forfeit.
func (s *Service) LeaveGame(ctx context.Context, gameID, playerID string) (*duoquiz.Game, error) {
	game, err := s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.PlayerByID(playerID) == nil {
			return duoquiz.ErrNotFound
		}

		remaining := g.Players[:0:0]
		for _, p := range g.Players {
			if p.ID != playerID {
				remaining = append(remaining, p)
			}
		}
		g.Players = remaining

		if len(g.Players) == 0 {
			return gamestore.Delete
		}
		if g.HostID == playerID {
			g.HostID = g.Players[0].ID
		}
		if g.Status == duoquiz.StatusPlaying {
			finishGame(g)
			g.WinnerID = g.Players[0].ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("player left", "game_id", gameID, "player_id", playerID)
	return game, nil
}
