package engine

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pairplay/duoquiz/internal/duoquiz"
	"github.com/pairplay/duoquiz/internal/gamestore"
)

// memStore is an in-memory Store double with the same transactional
// contract as gamestore.Store: the closure runs against a copy and the
// result only replaces the stored document when the closure succeeds.
type memStore struct {
	mu    sync.Mutex
	games map[string]*duoquiz.Game

	// forcedCollisions makes CodeInUse report true this many times before
	// falling back to the real lookup.
	forcedCollisions int
	codeChecks       int
}

func newMemStore() *memStore {
	return &memStore{games: make(map[string]*duoquiz.Game)}
}

func cloneGame(g *duoquiz.Game) *duoquiz.Game {
	data, err := json.Marshal(g)
	if err != nil {
		panic(err)
	}
	var out duoquiz.Game
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

func (m *memStore) Create(_ context.Context, game *duoquiz.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[game.ID] = cloneGame(game)
	return nil
}

func (m *memStore) Get(_ context.Context, gameID string) (*duoquiz.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameID]
	if !ok {
		return nil, duoquiz.ErrNotFound
	}
	return cloneGame(g), nil
}

func (m *memStore) FindByRoomCode(_ context.Context, code string) (*duoquiz.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.games {
		if g.RoomCode == code && g.Status == duoquiz.StatusWaiting {
			return cloneGame(g), nil
		}
	}
	return nil, duoquiz.ErrNotFound
}

func (m *memStore) CodeInUse(_ context.Context, code string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codeChecks++
	if m.forcedCollisions > 0 {
		m.forcedCollisions--
		return true, nil
	}
	for _, g := range m.games {
		if g.RoomCode == code && g.Status != duoquiz.StatusFinished {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Transact(_ context.Context, gameID string, fn func(*duoquiz.Game) error) (*duoquiz.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.games[gameID]
	if !ok {
		return nil, duoquiz.ErrNotFound
	}
	g := cloneGame(stored)
	err := fn(g)
	if errors.Is(err, gamestore.Delete) {
		delete(m.games, gameID)
		return g, nil
	}
	if err != nil {
		return nil, err
	}
	m.games[gameID] = cloneGame(g)
	return g, nil
}

// put injects a document directly, bypassing the service.
func (m *memStore) put(g *duoquiz.Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = cloneGame(g)
}

func newTestService(t *testing.T) (*Service, *memStore) {
	t.Helper()
	store := newMemStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, logger), store
}

// startedGame creates a game, joins a second player, readies both and
// starts. Returns the playing game and the two player ids.
func startedGame(t *testing.T, svc *Service, mode duoquiz.GameMode) (*duoquiz.Game, string, string) {
	t.Helper()
	ctx := context.Background()

	game, err := svc.CreateGame(ctx, PlayerProfile{Name: "ana"}, mode)
	require.NoError(t, err)
	hostID := game.HostID

	game, guestID, err := svc.JoinGame(ctx, game.RoomCode, PlayerProfile{Name: "bruno"})
	require.NoError(t, err)

	_, err = svc.SetReady(ctx, game.ID, hostID, true)
	require.NoError(t, err)
	_, err = svc.SetReady(ctx, game.ID, guestID, true)
	require.NoError(t, err)

	game, err = svc.StartGame(ctx, game.ID, hostID)
	require.NoError(t, err)
	return game, hostID, guestID
}
