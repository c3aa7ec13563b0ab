package engine

import "github.com/pairplay/duoquiz/internal/duoquiz"

// coordinate is the single place that decides "both players have acted on
// the current question" and triggers the scoring pass. It always runs inside
// a store transaction, so two racing submissions cannot both observe
// "not yet both-answered": the second transaction re-reads the document the
// first one committed.
//
// Exactly-once is enforced by answer state: scoring only runs while at least
// one answer for the question is still pending, and the pass itself moves
// every answer to scored.
func coordinate(g *duoquiz.Game, strat modeStrategy) (scored bool) {
	index := g.CurrentQuestionIndex
	if !strat.bothActed(g, index) {
		return false
	}
	if !hasPendingAnswer(g, index) {
		return false
	}
	strat.scoreQuestion(g, index)
	advanceTurn(g)
	return true
}

func hasPendingAnswer(g *duoquiz.Game, index int) bool {
	for i := range g.Players {
		if a := g.Players[i].AnswerAt(index); a != nil && a.State == duoquiz.AnswerPending {
			return true
		}
	}
	return false
}
