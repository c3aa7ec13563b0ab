// Package gamestore persists game documents in SQLite via libSQL. Each game
// is one JSON document guarded by a version column; every read-decide-write
// goes through Transact so two clients racing on the same document can never
// both apply a derived write.
package gamestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// Delete is a sentinel a Transact closure returns to remove the document
// inside the same transaction instead of writing it back.
var Delete = errors.New("gamestore: delete document")

var errVersionConflict = errors.New("gamestore: version conflict")

const transactRetries = 5

type Store struct {
	db *sql.DB

	// Notify, when set, receives the committed document after every write.
	// It is the fan-out point for subscribed clients.
	Notify func(*duoquiz.Game)
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create inserts a new game document at version 1.
func (s *Store) Create(ctx context.Context, game *duoquiz.Game) error {
	doc, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("encoding game: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO games (id, room_code, status, doc)
		VALUES (?, ?, ?, ?)
	`, game.ID, game.RoomCode, string(game.Status), string(doc))
	if err != nil {
		return fmt.Errorf("inserting game: %w", err)
	}
	if s.Notify != nil {
		s.Notify(game)
	}
	return nil
}

// Get returns the current document for a game id.
func (s *Store) Get(ctx context.Context, gameID string) (*duoquiz.Game, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM games WHERE id = ?
	`, gameID).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, duoquiz.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading game: %w", err)
	}
	return decode(doc)
}

// FindByRoomCode returns the waiting game bound to a room code. Codes of
// finished or deleted games are not found here, so they may be reused.
func (s *Store) FindByRoomCode(ctx context.Context, code string) (*duoquiz.Game, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `
		SELECT doc FROM games WHERE room_code = ? AND status = 'waiting'
	`, code).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, duoquiz.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("looking up room code: %w", err)
	}
	return decode(doc)
}

// CodeInUse reports whether a room code is bound to any active game.
func (s *Store) CodeInUse(ctx context.Context, code string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM games WHERE room_code = ? AND status IN ('waiting', 'playing')
	`, code).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking room code: %w", err)
	}
	return true, nil
}

// Transact runs fn against the current document and writes the result back
// atomically. The write is guarded by a compare-and-swap on the version
// column; on a conflict the closure is re-run against the fresh document.
// An error from fn rolls everything back and is returned unchanged, so
// rejected operations leave the document untouched.
func (s *Store) Transact(ctx context.Context, gameID string, fn func(*duoquiz.Game) error) (*duoquiz.Game, error) {
	for range transactRetries {
		game, err := s.tryTransact(ctx, gameID, fn)
		if errors.Is(err, errVersionConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if s.Notify != nil {
			s.Notify(game)
		}
		return game, nil
	}
	return nil, fmt.Errorf("transacting game %s: too much contention", gameID)
}

func (s *Store) tryTransact(ctx context.Context, gameID string, fn func(*duoquiz.Game) error) (*duoquiz.Game, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var doc string
	var version int64
	err = tx.QueryRowContext(ctx, `
		SELECT doc, version FROM games WHERE id = ?
	`, gameID).Scan(&doc, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, duoquiz.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading game: %w", err)
	}

	game, err := decode(doc)
	if err != nil {
		return nil, err
	}

	fnErr := fn(game)
	if fnErr != nil && !errors.Is(fnErr, Delete) {
		return nil, fnErr
	}

	if errors.Is(fnErr, Delete) {
		res, err := tx.ExecContext(ctx, `
			DELETE FROM games WHERE id = ? AND version = ?
		`, gameID, version)
		if err != nil {
			return nil, fmt.Errorf("deleting game: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, errVersionConflict
		}
		if err := tx.Commit(); err != nil {
			return nil, fmt.Errorf("committing delete: %w", err)
		}
		return game, nil
	}

	game.UpdatedAt = time.Now().UTC()
	updated, err := json.Marshal(game)
	if err != nil {
		return nil, fmt.Errorf("encoding game: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE games
		SET doc = ?, status = ?, version = version + 1,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
		WHERE id = ? AND version = ?
	`, string(updated), string(game.Status), gameID, version)
	if err != nil {
		return nil, fmt.Errorf("writing game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, errVersionConflict
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing game: %w", err)
	}
	return game, nil
}

func decode(doc string) (*duoquiz.Game, error) {
	var game duoquiz.Game
	if err := json.Unmarshal([]byte(doc), &game); err != nil {
		return nil, fmt.Errorf("decoding game: %w", err)
	}
	return &game, nil
}
