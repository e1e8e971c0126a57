package stats

import "math"

// Derived holds the per-game values computed from a Box.
type Derived struct {
	Points              int        `json:"points"`
	Rebounds            int        `json:"rebounds"`
	FieldGoalsMade      int        `json:"fgm"`
	FieldGoalsAttempted int        `json:"fga"`
	FieldGoalPercent    Percentage `json:"fg_pct"`
	ThreePointPercent   Percentage `json:"three_pct"`
	FreeThrowPercent    Percentage `json:"ft_pct"`
	ImpactScore         int        `json:"impact_score"`
}

func Derive(b Box) Derived {
	fgm, fga := FieldGoals(b)
	return Derived{
		Points:              Points(b),
		Rebounds:            Rebounds(b),
		FieldGoalsMade:      fgm,
		FieldGoalsAttempted: fga,
		FieldGoalPercent:    Percent(fgm, fga),
		ThreePointPercent:   Percent(b.ThreePm, b.ThreePa),
		FreeThrowPercent:    Percent(b.Ftm, b.Fta),
		ImpactScore:         ImpactScore(b),
	}
}

func Points(b Box) int {
	return b.Ftm + b.TwoPm*2 + b.ThreePm*3
}

func Rebounds(b Box) int {
	return b.OffReb + b.DefReb
}

// FieldGoals combines two and three point shots.
func FieldGoals(b Box) (made, attempted int) {
	return b.TwoPm + b.ThreePm, b.TwoPa + b.ThreePa
}

// ImpactScore is points + rebounds + assists + steals + blocks. It is only used for ranking.
func ImpactScore(b Box) int {
	return Points(b) + Rebounds(b) + b.Ast + b.Stl + b.Blk
}

// Percent returns made/attempted as a whole percentage. Zero attempts is 0%, never an error.
func Percent(made, attempted int) Percentage {
	if attempted <= 0 {
		return 0
	}
	return Percentage(math.Round(100 * float64(made) / float64(attempted)))
}
