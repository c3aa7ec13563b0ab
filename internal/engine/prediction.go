package engine

import (
	"context"
	"time"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// Prediction mode: per question, one player answers for real and the other
// predicts that answer. Roles alternate by question-index parity so each
// player answers half the questions and predicts the other half. Only the
// guessing player scores.

type predictionStrategy struct{}

func (predictionStrategy) onGameStart(g *duoquiz.Game) {
	pairings := make([]duoquiz.PredictionPairing, g.TotalQuestions)
	for i := range pairings {
		pairings[i] = duoquiz.PredictionPairing{
			QuestionIndex:     i,
			AnsweringPlayerID: g.Players[i%2].ID,
			GuessingPlayerID:  g.Players[(i+1)%2].ID,
		}
	}
	g.PredictionPairings = pairings
}

func (predictionStrategy) bothActed(g *duoquiz.Game, index int) bool {
	if index >= len(g.PredictionPairings) {
		return false
	}
	pairing := g.PredictionPairings[index]
	if pairing.AnsweringPlayerChoice == "" {
		return false
	}
	guesser := g.PlayerByID(pairing.GuessingPlayerID)
	return guesser != nil && guesser.AnswerAt(index) != nil
}

func (predictionStrategy) scoreQuestion(g *duoquiz.Game, index int) {
	pairing := g.PredictionPairings[index]
	question := g.Questions[index]

	guesser := g.PlayerByID(pairing.GuessingPlayerID)
	guess := guesser.AnswerAt(index)
	if guess.State == duoquiz.AnswerPending {
		if guess.ChosenOptionID == pairing.AnsweringPlayerChoice {
			guess.IsCorrect = true
			guess.PointsAwarded = questionPoints(question.Difficulty, guess.TimeSpentSeconds, float64(g.TimePerQuestion))
			guesser.Score += guess.PointsAwarded
			guesser.CorrectAnswersCount++
		}
		guess.State = duoquiz.AnswerScored
		updateAverageTime(guesser)
	}
}

// SubmitOriginalAnswer records the answering player's real choice for the
// current question. No points are awarded here; the caller raises the
// partner_answered notification for the guessing player.
func (s *Service) SubmitOriginalAnswer(ctx context.Context, gameID, playerID string, questionIndex int, optionID string) (*duoquiz.Game, error) {
	return s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Mode != duoquiz.ModePrediction {
			return duoquiz.ErrWrongGameMode
		}
		if g.Status != duoquiz.StatusPlaying {
			return duoquiz.ErrGameNotActive
		}
		if g.PlayerByID(playerID) == nil {
			return duoquiz.ErrNotFound
		}
		if questionIndex != g.CurrentQuestionIndex {
			return duoquiz.ErrDuplicateSubmission
		}

		pairing := &g.PredictionPairings[questionIndex]
		if playerID != pairing.AnsweringPlayerID {
			return duoquiz.ErrNotAuthorized
		}
		if pairing.AnsweringPlayerChoice != "" {
			return duoquiz.ErrAlreadyAnswered
		}
		pairing.AnsweringPlayerChoice = optionID

		// The real answer never scores; record it settled from the start.
		p := g.PlayerByID(playerID)
		p.Answers = append(p.Answers, duoquiz.Answer{
			QuestionID:     g.Questions[questionIndex].ID,
			QuestionIndex:  questionIndex,
			ChosenOptionID: optionID,
			State:          duoquiz.AnswerScored,
			SubmittedAt:    time.Now().UTC(),
		})
		p.HasAnsweredCurrent = true
		updateAverageTime(p)

		coordinate(g, predictionStrategy{})
		return nil
	})
}

// PredictionResult is returned to the guessing player for immediate
// feedback.
type PredictionResult struct {
	Game          *duoquiz.Game
	IsCorrect     bool
	PointsAwarded int
	GameComplete  bool
}

// SubmitPrediction records the guessing player's prediction. Valid only
// once the partner's real answer exists; correctness and points are settled
// in the same transaction.
func (s *Service) SubmitPrediction(ctx context.Context, gameID, playerID string, questionIndex int, guessedOptionID string, timeSpent float64) (*PredictionResult, error) {
	var result PredictionResult
	game, err := s.store.Transact(ctx, gameID, func(g *duoquiz.Game) error {
		if g.Mode != duoquiz.ModePrediction {
			return duoquiz.ErrWrongGameMode
		}
		if g.Status != duoquiz.StatusPlaying {
			return duoquiz.ErrGameNotActive
		}
		p := g.PlayerByID(playerID)
		if p == nil {
			return duoquiz.ErrNotFound
		}
		if questionIndex != g.CurrentQuestionIndex {
			return duoquiz.ErrDuplicateSubmission
		}

		pairing := g.PredictionPairings[questionIndex]
		if playerID != pairing.GuessingPlayerID {
			return duoquiz.ErrNotAuthorized
		}
		if pairing.AnsweringPlayerChoice == "" {
			return duoquiz.ErrPartnerNotAnswered
		}
		if p.AnswerAt(questionIndex) != nil {
			return duoquiz.ErrDuplicateSubmission
		}

		p.Answers = append(p.Answers, duoquiz.Answer{
			QuestionID:       g.Questions[questionIndex].ID,
			QuestionIndex:    questionIndex,
			ChosenOptionID:   guessedOptionID,
			TimeSpentSeconds: timeSpent,
			State:            duoquiz.AnswerPending,
			SubmittedAt:      time.Now().UTC(),
		})
		p.HasAnsweredCurrent = true

		coordinate(g, predictionStrategy{})

		settled := g.PlayerByID(playerID).AnswerAt(questionIndex)
		result.IsCorrect = settled.IsCorrect
		result.PointsAwarded = settled.PointsAwarded
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Game = game
	result.GameComplete = game.Status == duoquiz.StatusFinished
	return &result, nil
}
