package stats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var errInvalidPercentage = errors.New(`percentage must look like "47%"`)

// Percentage is a whole-number percentage that renders as "47%".
type Percentage int

func (p Percentage) String() string {
	return fmt.Sprintf("%d%%", int(p))
}

func (p Percentage) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(p.String())), nil
}

func (p *Percentage) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return errInvalidPercentage
	}
	s, ok := strings.CutSuffix(s, "%")
	if !ok {
		return errInvalidPercentage
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return errInvalidPercentage
	}
	*p = Percentage(n)
	return nil
}

// perGame formats total/games with one decimal place, halves rounding up.
// No games is "0.0".
func perGame(total, games int) string {
	if games == 0 {
		return "0.0"
	}
	tenths := (20*total + games) / (2 * games)
	return fmt.Sprintf("%d.%d", tenths/10, tenths%10)
}
