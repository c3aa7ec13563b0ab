package gamestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// Session binds a bearer token to one player of one game.
type Session struct {
	GameID   string
	PlayerID string
}

// CreateSession mints a session token for a player. Tokens are random and
// only ever handed to the client that created or joined the game.
func (s *Store) CreateSession(ctx context.Context, gameID, playerID string) (string, error) {
	var token string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sessions (token, game_id, player_id)
		VALUES (lower(hex(randomblob(16))), ?, ?)
		RETURNING token
	`, gameID, playerID).Scan(&token)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return token, nil
}

// SessionLookup resolves a bearer token.
func (s *Store) SessionLookup(ctx context.Context, token string) (Session, error) {
	var sess Session
	err := s.db.QueryRowContext(ctx, `
		SELECT game_id, player_id FROM sessions WHERE token = ?
	`, token).Scan(&sess.GameID, &sess.PlayerID)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, duoquiz.ErrNotFound
	}
	if err != nil {
		return Session{}, fmt.Errorf("looking up session: %w", err)
	}
	return sess, nil
}
