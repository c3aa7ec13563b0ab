// Package duoquiz defines the core domain types and the error taxonomy for
// the two-player quiz engine. It has no dependencies beyond the standard
// library.
package duoquiz

import "time"

const (
	// MaxPlayers is fixed: the whole product is built around exactly two
	// players sharing one game document.
	MaxPlayers = 2

	// TotalQuestions is the size of the server-assigned question list for
	// competitive and prediction games.
	TotalQuestions = 10

	// TimePerQuestion is the advisory per-question timer in seconds. The
	// engine never enforces it; clients drive the countdown.
	TimePerQuestion = 15

	// MaxCustomQuestions caps a custom game's total authored questions.
	MaxCustomQuestions = 20

	// MaxCustomPerPlayer caps how many questions one player may author.
	MaxCustomPerPlayer = 10

	// CustomFairnessWindow is how far ahead of the partner a player's
	// authored-question count may run.
	CustomFairnessWindow = 1

	// RoomCodeLength is the length of the shareable join code.
	RoomCodeLength = 6
)

type GameMode string

const (
	ModeCompetitive GameMode = "competitive"
	ModePrediction  GameMode = "prediction"
	ModeCustom      GameMode = "custom"
)

type GameStatus string

const (
	StatusWaiting  GameStatus = "waiting"
	StatusPlaying  GameStatus = "playing"
	StatusFinished GameStatus = "finished"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "facile"
	DifficultyMedium Difficulty = "moyen"
	DifficultyHard   Difficulty = "difficile"
)

// AnswerState is the explicit per-answer lifecycle. An answer is created
// pending and moves to scored exactly once; it is never rewritten after that.
type AnswerState string

const (
	AnswerPending AnswerState = "pending"
	AnswerScored  AnswerState = "scored"
)

// Judgment is the asker's verdict on a custom-mode free-text answer.
type Judgment string

const (
	JudgmentCorrect   Judgment = "correct"
	JudgmentAlmost    Judgment = "almost"
	JudgmentIncorrect Judgment = "incorrect"
)

// Game is the root aggregate and the single source of truth. It is stored as
// one JSON document; every mutation runs as one store transaction.
type Game struct {
	ID         string     `json:"id"`
	RoomCode   string     `json:"roomCode"`
	HostID     string     `json:"hostId"`
	Mode       GameMode   `json:"mode"`
	Status     GameStatus `json:"status"`
	Players    []Player   `json:"players"`
	MaxPlayers int        `json:"maxPlayers"`

	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	Questions            []Question `json:"questions,omitempty"`
	TotalQuestions       int        `json:"totalQuestions"`
	TimePerQuestion      int        `json:"timePerQuestion"`

	PredictionPairings []PredictionPairing `json:"predictionPairings,omitempty"`
	CustomQuestions    []CustomQuestion    `json:"customQuestions,omitempty"`

	WinnerID string `json:"winnerId,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// PlayerByID returns a pointer into g.Players, or nil.
func (g *Game) PlayerByID(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// OtherPlayer returns the player that is not id, or nil in a one-player game.
func (g *Game) OtherPlayer(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID != id {
			return &g.Players[i]
		}
	}
	return nil
}

type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`

	IsReady            bool     `json:"isReady"`
	Score              int      `json:"score"`
	Answers            []Answer `json:"answers"`
	HasAnsweredCurrent bool     `json:"hasAnsweredCurrent"`

	CorrectAnswersCount int     `json:"correctAnswersCount"`
	AverageTime         float64 `json:"averageTime"`
}

// AnswerAt returns the player's answer for a question index, or nil. The
// answer list never skips an index, so this is a bounds check plus lookup.
func (p *Player) AnswerAt(index int) *Answer {
	if index < 0 || index >= len(p.Answers) {
		return nil
	}
	return &p.Answers[index]
}

type Answer struct {
	QuestionID       string      `json:"questionId"`
	QuestionIndex    int         `json:"questionIndex"`
	ChosenOptionID   string      `json:"chosenOptionId,omitempty"`
	FreeText         string      `json:"freeText,omitempty"`
	IsCorrect        bool        `json:"isCorrect"`
	TimeSpentSeconds float64     `json:"timeSpentSeconds"`
	PointsAwarded    int         `json:"pointsAwarded"`
	State            AnswerState `json:"state"`
	SubmittedAt      time.Time   `json:"submittedAt"`
}

type Question struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Options    []Option   `json:"options"`
}

type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PredictionPairing assigns the answering and guessing roles for one
// question of a prediction game. Created empty at game start;
// AnsweringPlayerChoice is set exactly once, then read-only.
type PredictionPairing struct {
	QuestionIndex         int    `json:"questionIndex"`
	AnsweringPlayerID     string `json:"answeringPlayerId"`
	GuessingPlayerID      string `json:"guessingPlayerId"`
	AnsweringPlayerChoice string `json:"answeringPlayerChoice,omitempty"`
}

// CustomQuestion is a live-authored question in custom mode. Lifecycle is
// strictly asked → answered → judged; once judged it is immutable.
type CustomQuestion struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	AskedBy        string    `json:"askedBy"`
	MustAnswer     string    `json:"mustAnswer"`
	FreeTextAnswer string    `json:"freeTextAnswer,omitempty"`
	Answered       bool      `json:"answered"`
	Judgment       Judgment  `json:"judgment,omitempty"`
	PointsAwarded  int       `json:"pointsAwarded"`
	AskedAt        time.Time `json:"askedAt"`
}

// Judged reports whether the asker has delivered a verdict.
func (q *CustomQuestion) Judged() bool {
	return q.Judgment != ""
}
