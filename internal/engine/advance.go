package engine

import (
	"context"
	"time"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// advanceTurn moves to the next question or finalizes when the list is
// exhausted. Runs inside the scoring transaction.
func advanceTurn(g *duoquiz.Game) {
	if g.CurrentQuestionIndex+1 >= g.TotalQuestions {
		finishGame(g)
		return
	}
	g.CurrentQuestionIndex++
	for i := range g.Players {
		g.Players[i].HasAnsweredCurrent = false
	}
}

// NextQuestion advances the turn for a specific index. The expected index
// makes the call idempotent: a repeated call for an index that already
// advanced is a no-op rather than a double-advance.
func (s *Service) NextQuestion(ctx context.Context, gameID string, expectedIndex int) (*duoquiz.Game, error) {
	return s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Status != duoquiz.StatusPlaying {
			return duoquiz.ErrGameNotActive
		}
		if g.CurrentQuestionIndex != expectedIndex {
			return nil
		}
		advanceTurn(g)
		return nil
	})
}

// finishGame is terminal: finished status, completion time, winner by score
// with ties leaving the winner empty.
func finishGame(g *duoquiz.Game) {
	if g.Status == duoquiz.StatusFinished {
		return
	}
	now := time.Now().UTC()
	g.Status = duoquiz.StatusFinished
	g.CompletedAt = &now

	if len(g.Players) == duoquiz.MaxPlayers {
		switch {
		case g.Players[0].Score > g.Players[1].Score:
			g.WinnerID = g.Players[0].ID
		case g.Players[1].Score > g.Players[0].Score:
			g.WinnerID = g.Players[1].ID
		}
	}
}
