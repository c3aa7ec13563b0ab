package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pairplay/duoquiz/internal/duoquiz"
)

func TestQuestionBank(t *testing.T) {
	require.GreaterOrEqual(t, len(questionBank), duoquiz.TotalQuestions)

	for _, q := range questionBank {
		assert.NotEmpty(t, q.ID)
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Category)
		assert.Contains(t, []duoquiz.Difficulty{
			duoquiz.DifficultyEasy,
			duoquiz.DifficultyMedium,
			duoquiz.DifficultyHard,
		}, q.Difficulty)
		assert.Len(t, q.Options, 4, "question %s", q.ID)
	}
}

func TestDrawQuestions(t *testing.T) {
	drawn := drawQuestions(duoquiz.TotalQuestions)
	require.Len(t, drawn, duoquiz.TotalQuestions)

	seen := make(map[string]bool)
	for _, q := range drawn {
		require.False(t, seen[q.ID], "question %s drawn twice", q.ID)
		seen[q.ID] = true
	}

	// Asking for more than the bank holds clamps to the bank size.
	all := drawQuestions(len(questionBank) + 10)
	assert.Len(t, all, len(questionBank))
}
