package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// Custom mode: no fixed question bank. Players author questions live, each
// one walking a strict asked → answered → judged lifecycle with a different
// player on each side of every transition.

type customStrategy struct{}

func (customStrategy) onGameStart(*duoquiz.Game) {}

// Custom games have no shared question index to coordinate on; progress is
// driven entirely by the per-question lifecycle.
func (customStrategy) bothActed(*duoquiz.Game, int) bool { return false }

func (customStrategy) scoreQuestion(*duoquiz.Game, int) {}

func questionsAskedBy(g *duoquiz.Game, playerID string) (total int, unresolved int) {
	for i := range g.CustomQuestions {
		q := &g.CustomQuestions[i]
		if q.AskedBy != playerID {
			continue
		}
		total++
		if !q.Answered || !q.Judged() {
			unresolved++
		}
	}
	return total, unresolved
}

func customQuestionByID(g *duoquiz.Game, questionID string) *duoquiz.CustomQuestion {
	for i := range g.CustomQuestions {
		if g.CustomQuestions[i].ID == questionID {
			return &g.CustomQuestions[i]
		}
	}
	return nil
}

// AskQuestion authors a new question bound to the asker and the other
// player as mandatory responder. Turn gating is derived, never stored: the
// asker must be under their per-player cap, have no question still awaiting
// an answer or judgment, and may not run more than the fairness window
// ahead of the partner's authored count.
func (s *Service) AskQuestion(ctx context.Context, gameID, askerID, text string) (*duoquiz.CustomQuestion, *duoquiz.Game, error) {
	var asked duoquiz.CustomQuestion
	game, err := s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Mode != duoquiz.ModeCustom {
			return duoquiz.ErrWrongGameMode
		}
		if g.Status != duoquiz.StatusPlaying {
			return duoquiz.ErrGameNotActive
		}
		if g.PlayerByID(askerID) == nil {
			return duoquiz.ErrNotFound
		}
		other := g.OtherPlayer(askerID)
		if other == nil {
			return duoquiz.ErrInsufficientPlayers
		}

		if len(g.CustomQuestions) >= duoquiz.MaxCustomQuestions {
			return duoquiz.ErrQuestionLimitReached
		}
		mine, unresolved := questionsAskedBy(g, askerID)
		if mine >= duoquiz.MaxCustomPerPlayer {
			return duoquiz.ErrQuestionLimitReached
		}
		if unresolved > 0 {
			return duoquiz.ErrNotYourTurnToAsk
		}
		theirs, _ := questionsAskedBy(g, other.ID)
		if mine-theirs >= duoquiz.CustomFairnessWindow {
			return duoquiz.ErrNotYourTurnToAsk
		}

		asked = duoquiz.CustomQuestion{
			ID:         uuid.NewString(),
			Text:       text,
			AskedBy:    askerID,
			MustAnswer: other.ID,
			AskedAt:    time.Now().UTC(),
		}
		g.CustomQuestions = append(g.CustomQuestions, asked)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &asked, game, nil
}

// AnswerQuestion records the bound responder's free-text answer, once.
func (s *Service) AnswerQuestion(ctx context.Context, gameID, responderID, questionID, text string) (*duoquiz.Game, error) {
	return s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Mode != duoquiz.ModeCustom {
			return duoquiz.ErrWrongGameMode
		}
		if g.Status != duoquiz.StatusPlaying {
			return duoquiz.ErrGameNotActive
		}
		q := customQuestionByID(g, questionID)
		if q == nil {
			return duoquiz.ErrNotFound
		}
		if responderID != q.MustAnswer {
			return duoquiz.ErrNotAuthorized
		}
		if q.Answered {
			return duoquiz.ErrAlreadyAnswered
		}
		q.FreeTextAnswer = text
		q.Answered = true
		return nil
	})
}

// JudgeAnswer delivers the asker's verdict and credits the responder:
// correct = 10 (and a correct-count increment), almost = 5, incorrect = 0.
// The game auto-finishes once the question cap is reached and everything is
// judged.
func (s *Service) JudgeAnswer(ctx context.Context, gameID, judgeID, questionID string, judgment duoquiz.Judgment) (*duoquiz.CustomQuestion, *duoquiz.Game, error) {
	switch judgment {
	case duoquiz.JudgmentCorrect, duoquiz.JudgmentAlmost, duoquiz.JudgmentIncorrect:
	default:
		return nil, nil, duoquiz.ErrInvalidJudgment
	}

	var judged duoquiz.CustomQuestion
	game, err := s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Mode != duoquiz.ModeCustom {
			return duoquiz.ErrWrongGameMode
		}
		if g.Status != duoquiz.StatusPlaying {
			return duoquiz.ErrGameNotActive
		}
		q := customQuestionByID(g, questionID)
		if q == nil {
			return duoquiz.ErrNotFound
		}
		if judgeID != q.AskedBy {
			return duoquiz.ErrNotAuthorized
		}
		if !q.Answered {
			return duoquiz.ErrPartnerNotAnswered
		}
		if q.Judged() {
			return duoquiz.ErrAlreadyJudged
		}

		q.Judgment = judgment
		q.PointsAwarded = judgmentPoints(judgment)

		responder := g.PlayerByID(q.MustAnswer)
		if responder != nil {
			responder.Score += q.PointsAwarded
			if judgment == duoquiz.JudgmentCorrect {
				responder.CorrectAnswersCount++
			}
		}

		if len(g.CustomQuestions) >= duoquiz.MaxCustomQuestions && allJudged(g) {
			finishGame(g)
		}

		judged = *q
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &judged, game, nil
}

func allJudged(g *duoquiz.Game) bool {
	for i := range g.CustomQuestions {
		if !g.CustomQuestions[i].Judged() {
			return false
		}
	}
	return true
}
