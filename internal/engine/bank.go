package engine

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

//go:embed questions.json
var bankJSON []byte

var questionBank = mustLoadBank()

func mustLoadBank() []duoquiz.Question {
	var bank []duoquiz.Question
	if err := json.Unmarshal(bankJSON, &bank); err != nil {
		panic(fmt.Sprintf("engine: embedded question bank is invalid: %v", err))
	}
	return bank
}

// drawQuestions picks n distinct questions from the embedded bank. Questions
// are server-assigned at creation and immutable afterwards; clients never
// supply question content.
func drawQuestions(n int) []duoquiz.Question {
	picked := make([]duoquiz.Question, len(questionBank))
	copy(picked, questionBank)
	rand.Shuffle(len(picked), func(i, j int) {
		picked[i], picked[j] = picked[j], picked[i]
	})
	if n > len(picked) {
		n = len(picked)
	}
	return picked[:n]
}
