// Package engine implements the game-session state machine: room lifecycle,
// the three mode protocols, answer coordination with exactly-once scoring,
// turn advancement, and compatibility analysis.
//
// The engine holds no mutable state of its own. Every operation that reads
// current state and writes a derived state runs inside a single store
// transaction; the store's compare-and-swap is the only synchronization
// point between the two players' clients.
package engine

import (
	"context"
	"log/slog"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// Store is the transactional document store the engine mutates games
// through. *gamestore.Store satisfies it; tests substitute an in-memory
// double.
type Store interface {
	Create(ctx context.Context, game *duoquiz.Game) error
	Get(ctx context.Context, gameID string) (*duoquiz.Game, error)
	FindByRoomCode(ctx context.Context, code string) (*duoquiz.Game, error)
	CodeInUse(ctx context.Context, code string) (bool, error)
	Transact(ctx context.Context, gameID string, fn func(*duoquiz.Game) error) (*duoquiz.Game, error)
}

type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}
