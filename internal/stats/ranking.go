package stats

import (
	"cmp"
	"slices"
)

// NotableGameCount is the number of games shown on a trading card.
const NotableGameCount = 3

type Ranked[T Boxer] struct {
	Game           T              `json:"game"`
	ImpactScore    int            `json:"impact_score"`
	Classification Classification `json:"classification"`
	Badge          string         `json:"badge"`
}

// Notable ranks games by impact score, highest first, and returns at most n of them. Equal
// scores keep their order from games.
func Notable[T Boxer](games []T, n int) []Ranked[T] {
	ranked := make([]Ranked[T], 0, len(games))
	for _, g := range games {
		b := g.Boxscore()
		c := Classify(b)
		ranked = append(ranked, Ranked[T]{
			Game:           g,
			ImpactScore:    ImpactScore(b),
			Classification: c,
			Badge:          c.Badge(),
		})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked[T]) int {
		return cmp.Compare(b.ImpactScore, a.ImpactScore)
	})

	if n < 0 {
		n = 0
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
