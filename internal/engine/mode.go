package engine

import "github.com/pairplay/duoquiz/internal/duoquiz"

// modeStrategy is the per-mode behavior behind the shared lifecycle and
// coordination code. One implementation per mode, selected once from
// game.Mode, so no operation branches on the mode itself.
type modeStrategy interface {
	// onGameStart runs inside the start transaction.
	onGameStart(g *duoquiz.Game)

	// bothActed reports whether both players have acted on the question
	// under this mode's definition of "acted".
	bothActed(g *duoquiz.Game, index int) bool

	// scoreQuestion applies the scoring pass for the question. The
	// coordinator guarantees it runs at most once per question.
	scoreQuestion(g *duoquiz.Game, index int)
}

func strategyFor(mode duoquiz.GameMode) modeStrategy {
	switch mode {
	case duoquiz.ModePrediction:
		return predictionStrategy{}
	case duoquiz.ModeCustom:
		return customStrategy{}
	default:
		return competitiveStrategy{}
	}
}
