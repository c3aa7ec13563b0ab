package engine

import (
	"context"
	"time"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// Competitive mode: both players answer the same question and points reward
// agreement, not trivia accuracy.

type competitiveStrategy struct{}

func (competitiveStrategy) onGameStart(*duoquiz.Game) {}

func (competitiveStrategy) bothActed(g *duoquiz.Game, index int) bool {
	for i := range g.Players {
		if g.Players[i].AnswerAt(index) == nil {
			return false
		}
	}
	return len(g.Players) == duoquiz.MaxPlayers
}

func (competitiveStrategy) scoreQuestion(g *duoquiz.Game, index int) {
	a1 := g.Players[0].AnswerAt(index)
	a2 := g.Players[1].AnswerAt(index)
	match := a1.ChosenOptionID == a2.ChosenOptionID
	question := g.Questions[index]

	for i := range g.Players {
		p := &g.Players[i]
		a := p.AnswerAt(index)
		if match {
			a.IsCorrect = true
			a.PointsAwarded = questionPoints(question.Difficulty, a.TimeSpentSeconds, float64(g.TimePerQuestion))
			p.Score += a.PointsAwarded
			p.CorrectAnswersCount++
		}
		a.State = duoquiz.AnswerScored
		updateAverageTime(p)
	}
}

// SubmitResult reports what one submission did to the shared document.
type SubmitResult struct {
	Game *duoquiz.Game

	// Answer is the caller's recorded answer, post-scoring when Scored.
	Answer duoquiz.Answer

	// Scored is true when this submission completed the pair and the
	// scoring pass ran.
	Scored bool

	GameComplete bool
}

// SubmitAnswer records a competitive answer. When it is the second of the
// pair, the question is scored and the turn advanced in the same
// transaction.
func (s *Service) SubmitAnswer(ctx context.Context, gameID, playerID string, questionIndex int, optionID string, timeSpent float64) (*SubmitResult, error) {
	var result SubmitResult
	game, err := s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Mode != duoquiz.ModeCompetitive {
			return duoquiz.ErrWrongGameMode
		}
		if g.Status != duoquiz.StatusPlaying {
			return duoquiz.ErrGameNotActive
		}
		p := g.PlayerByID(playerID)
		if p == nil {
			return duoquiz.ErrNotFound
		}
		// Only the current question accepts submissions; a stale index is a
		// client resubmitting a question that already advanced.
		if questionIndex != g.CurrentQuestionIndex {
			return duoquiz.ErrDuplicateSubmission
		}
		if p.AnswerAt(questionIndex) != nil {
			return duoquiz.ErrDuplicateSubmission
		}

		p.Answers = append(p.Answers, duoquiz.Answer{
			QuestionID:       g.Questions[questionIndex].ID,
			QuestionIndex:    questionIndex,
			ChosenOptionID:   optionID,
			TimeSpentSeconds: timeSpent,
			State:            duoquiz.AnswerPending,
			SubmittedAt:      time.Now().UTC(),
		})
		p.HasAnsweredCurrent = true

		result.Scored = coordinate(g, competitiveStrategy{})
		result.Answer = *g.PlayerByID(playerID).AnswerAt(questionIndex)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Game = game
	result.GameComplete = game.Status == duoquiz.StatusFinished
	return &result, nil
}
