package engine

import "github.com/pairplay/duoquiz/internal/duoquiz"

// Post-hoc compatibility statistics over completed answer sets. Pure
// functions; nothing here writes back to the store.

// CategoryStat is the per-category match ratio.
type CategoryStat struct {
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Compared int     `json:"compared"`
	Matches  int     `json:"matches"`
}

type Compatibility struct {
	// OverallPercent is 100 * matches / min(answers1, answers2),
	// always in [0, 100].
	OverallPercent float64        `json:"overallPercent"`
	Compared       int            `json:"compared"`
	Matches        int            `json:"matches"`
	PerCategory    []CategoryStat `json:"perCategory"`
	BestCategory   string         `json:"bestCategory,omitempty"`
	WorstCategory  string         `json:"worstCategory,omitempty"`
}

// Analyze computes compatibility over the questions both players have
// answered. Best and worst category ties break on the first-encountered
// category in question order.
func Analyze(g *duoquiz.Game) Compatibility {
	var result Compatibility
	if len(g.Players) < duoquiz.MaxPlayers {
		return result
	}

	p1, p2 := &g.Players[0], &g.Players[1]
	compared := min(len(p1.Answers), len(p2.Answers))
	result.Compared = compared
	if compared == 0 {
		return result
	}

	byCategory := make(map[string]*CategoryStat)
	var order []string

	for i := range compared {
		category := ""
		if i < len(g.Questions) {
			category = g.Questions[i].Category
		}
		stat, ok := byCategory[category]
		if !ok {
			stat = &CategoryStat{Category: category}
			byCategory[category] = stat
			order = append(order, category)
		}
		stat.Compared++
		if p1.Answers[i].ChosenOptionID != "" && p1.Answers[i].ChosenOptionID == p2.Answers[i].ChosenOptionID {
			stat.Matches++
			result.Matches++
		}
	}

	result.OverallPercent = 100 * float64(result.Matches) / float64(compared)

	var bestPct, worstPct float64
	for _, category := range order {
		stat := byCategory[category]
		stat.Percent = 100 * float64(stat.Matches) / float64(stat.Compared)
		result.PerCategory = append(result.PerCategory, *stat)

		if result.BestCategory == "" || stat.Percent > bestPct {
			result.BestCategory = category
			bestPct = stat.Percent
		}
		if result.WorstCategory == "" || stat.Percent < worstPct {
			result.WorstCategory = category
			worstPct = stat.Percent
		}
	}
	return result
}
