package stats

// Totals are season sums over a player's games.
type Totals struct {
	Games                  int `json:"games"`
	Points                 int `json:"points"`
	Rebounds               int `json:"rebounds"`
	Assists                int `json:"assists"`
	Steals                 int `json:"steals"`
	Blocks                 int `json:"blocks"`
	FieldGoalsMade         int `json:"fgm"`
	FieldGoalsAttempted    int `json:"fga"`
	FreeThrowsMade         int `json:"ftm"`
	FreeThrowsAttempted    int `json:"fta"`
	ThreePointersMade      int `json:"three_pm"`
	ThreePointersAttempted int `json:"three_pa"`
	Deflections            int `json:"deflections"`
	Turnovers              int `json:"turnovers"`
	Fouls                  int `json:"fouls"`
	MaxPoints              int `json:"max_points"`
}

// Averages are per-game values formatted to one decimal place.
type Averages struct {
	Points   string `json:"points"`
	Rebounds string `json:"rebounds"`
	Assists  string `json:"assists"`
	Steals   string `json:"steals"`
	Blocks   string `json:"blocks"`
}

type Percentages struct {
	FieldGoal  Percentage `json:"fg"`
	ThreePoint Percentage `json:"three"`
	FreeThrow  Percentage `json:"ft"`
}

type Season struct {
	Totals      Totals      `json:"totals"`
	Averages    Averages    `json:"averages"`
	Percentages Percentages `json:"percentages"`
}

// Aggregate folds games into season totals, averages and shooting percentages in one pass. The
// caller filters by player. Input order does not affect the result.
func Aggregate[T Boxer](games []T) Season {
	var t Totals
	for _, g := range games {
		b := g.Boxscore()
		pts := Points(b)
		fgm, fga := FieldGoals(b)

		t.Games++
		t.Points += pts
		t.Rebounds += Rebounds(b)
		t.Assists += b.Ast
		t.Steals += b.Stl
		t.Blocks += b.Blk
		t.FieldGoalsMade += fgm
		t.FieldGoalsAttempted += fga
		t.FreeThrowsMade += b.Ftm
		t.FreeThrowsAttempted += b.Fta
		t.ThreePointersMade += b.ThreePm
		t.ThreePointersAttempted += b.ThreePa
		t.Deflections += b.Deflections
		t.Turnovers += b.To
		t.Fouls += b.Pf
		t.MaxPoints = max(t.MaxPoints, pts)
	}

	return Season{
		Totals: t,
		Averages: Averages{
			Points:   perGame(t.Points, t.Games),
			Rebounds: perGame(t.Rebounds, t.Games),
			Assists:  perGame(t.Assists, t.Games),
			Steals:   perGame(t.Steals, t.Games),
			Blocks:   perGame(t.Blocks, t.Games),
		},
		Percentages: Percentages{
			FieldGoal:  Percent(t.FieldGoalsMade, t.FieldGoalsAttempted),
			ThreePoint: Percent(t.ThreePointersMade, t.ThreePointersAttempted),
			FreeThrow:  Percent(t.FreeThrowsMade, t.FreeThrowsAttempted),
		},
	}
}
