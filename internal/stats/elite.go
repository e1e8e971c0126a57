package stats

const doubleDigits = 10

const (
	BadgeTripleDouble = "Triple-Double"
	BadgeDoubleDouble = "Double-Double"
	BadgeStandard     = "Standard Game"
)

// Classification counts the categories (points, rebounds, assists, steals, blocks) that reached
// double digits. A triple-double is always a double-double as well.
type Classification struct {
	DoubleDigitCount int  `json:"double_digit_count"`
	DoubleDouble     bool `json:"double_double"`
	TripleDouble     bool `json:"triple_double"`
}

func Classify(b Box) Classification {
	categories := [5]int{Points(b), Rebounds(b), b.Ast, b.Stl, b.Blk}

	var count int
	for _, v := range categories {
		if v >= doubleDigits {
			count++
		}
	}

	return Classification{
		DoubleDigitCount: count,
		DoubleDouble:     count >= 2,
		TripleDouble:     count >= 3,
	}
}

// Badge picks the single label to show for a game, preferring the triple-double.
func (c Classification) Badge() string {
	switch {
	case c.TripleDouble:
		return BadgeTripleDouble
	case c.DoubleDouble:
		return BadgeDoubleDouble
	default:
		return BadgeStandard
	}
}
