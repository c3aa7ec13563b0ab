package engine

import (
	"math"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

// Pure scoring functions shared by the timed modes.

func basePoints(d duoquiz.Difficulty) int {
	switch d {
	case duoquiz.DifficultyMedium:
		return 15
	case duoquiz.DifficultyHard:
		return 20
	default:
		return 10
	}
}

// speedBonus buckets the elapsed-time ratio. The thresholds are compared
// inclusively: 5s of a 15s timer (ratio 0.333...) lands in the +25% bucket.
func speedBonus(timeSpent, timePerQuestion float64) float64 {
	if timePerQuestion <= 0 {
		return 0
	}
	ratio := timeSpent / timePerQuestion
	switch {
	case ratio <= 0.33:
		return 0.5
	case ratio <= 0.66:
		return 0.25
	default:
		return 0
	}
}

// questionPoints is base * (1 + bonus), rounded to nearest.
func questionPoints(d duoquiz.Difficulty, timeSpent, timePerQuestion float64) int {
	base := float64(basePoints(d))
	return int(math.Round(base * (1 + speedBonus(timeSpent, timePerQuestion))))
}

// Judgment points in custom mode.
func judgmentPoints(j duoquiz.Judgment) int {
	switch j {
	case duoquiz.JudgmentCorrect:
		return 10
	case duoquiz.JudgmentAlmost:
		return 5
	default:
		return 0
	}
}

// updateAverageTime recomputes a player's mean answer time over timed
// answers. Prediction-mode real answers carry no timer and are skipped.
func updateAverageTime(p *duoquiz.Player) {
	var total float64
	var timed int
	for _, a := range p.Answers {
		if a.TimeSpentSeconds > 0 {
			total += a.TimeSpentSeconds
			timed++
		}
	}
	if timed == 0 {
		p.AverageTime = 0
		return
	}
	p.AverageTime = total / float64(timed)
}
