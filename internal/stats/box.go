package stats

// Box is the raw per-game box score: fourteen non-negative counters. Made <= attempted is expected
// but not enforced here.
type Box struct {
	Ftm         int `json:"ftm"`
	Fta         int `json:"fta"`
	TwoPm       int `json:"two_pm"`
	TwoPa       int `json:"two_pa"`
	ThreePm     int `json:"three_pm"`
	ThreePa     int `json:"three_pa"`
	OffReb      int `json:"off_reb"`
	DefReb      int `json:"def_reb"`
	Ast         int `json:"ast"`
	Stl         int `json:"stl"`
	Blk         int `json:"blk"`
	Deflections int `json:"deflections"`
	To          int `json:"to"`
	Pf          int `json:"pf"`
}

// Boxer is implemented by anything carrying a box score, so the aggregation and ranking functions
// can work on stored game records directly.
type Boxer interface {
	Boxscore() Box
}

func (b Box) Boxscore() Box {
	return b
}

// Get returns the value of stat, or 0 for an unknown stat.
func (b Box) Get(stat PrimitiveStat) int {
	c := b.counter(stat)
	if c == nil {
		return 0
	}
	return *c
}

func (b *Box) counter(stat PrimitiveStat) *int {
	switch stat {
	case FreeThrowMade:
		return &b.Ftm
	case FreeThrowAttempt:
		return &b.Fta
	case TwoPointMade:
		return &b.TwoPm
	case TwoPointAttempt:
		return &b.TwoPa
	case ThreePointMade:
		return &b.ThreePm
	case ThreePointAttempt:
		return &b.ThreePa
	case OffensiveRebound:
		return &b.OffReb
	case DefensiveRebound:
		return &b.DefReb
	case Assist:
		return &b.Ast
	case Steal:
		return &b.Stl
	case Block:
		return &b.Blk
	case Deflection:
		return &b.Deflections
	case Turnover:
		return &b.To
	case PersonalFoul:
		return &b.Pf
	default:
		return nil
	}
}
