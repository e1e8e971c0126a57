package stats

import (
	"errors"
	"fmt"
)

var ErrUnknownStat = errors.New("unknown stat")

// PrimitiveStat names one of the raw counters kept for a single game. All writes to a Statline are
// done through PrimitiveStat's, while every derived value is read from a Box.
type PrimitiveStat string

const (
	FreeThrowMade     PrimitiveStat = "ftm"
	FreeThrowAttempt  PrimitiveStat = "fta"
	TwoPointMade      PrimitiveStat = "two_pm"
	TwoPointAttempt   PrimitiveStat = "two_pa"
	ThreePointMade    PrimitiveStat = "three_pm"
	ThreePointAttempt PrimitiveStat = "three_pa"
	OffensiveRebound  PrimitiveStat = "off_reb"
	DefensiveRebound  PrimitiveStat = "def_reb"
	Assist            PrimitiveStat = "ast"
	Steal             PrimitiveStat = "stl"
	Block             PrimitiveStat = "blk"
	Deflection        PrimitiveStat = "deflections"
	Turnover          PrimitiveStat = "to"
	PersonalFoul      PrimitiveStat = "pf"
)

// PrimitiveStats lists every counter in box score order.
var PrimitiveStats = []PrimitiveStat{
	FreeThrowMade, FreeThrowAttempt,
	TwoPointMade, TwoPointAttempt,
	ThreePointMade, ThreePointAttempt,
	OffensiveRebound, DefensiveRebound,
	Assist, Steal, Block,
	Deflection, Turnover, PersonalFoul,
}

// ParsePrimitiveStat returns the PrimitiveStat named by s, or ErrUnknownStat.
func ParsePrimitiveStat(s string) (PrimitiveStat, error) {
	stat := PrimitiveStat(s)
	if !stat.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStat, s)
	}
	return stat, nil
}

func (ps PrimitiveStat) Valid() bool {
	var b Box
	return b.counter(ps) != nil
}

// Shot groups a made counter with its attempted counter.
type Shot int

const (
	FreeThrow Shot = iota
	TwoPointer
	ThreePointer
)

func (s Shot) String() string {
	switch s {
	case FreeThrow:
		return "ft"
	case TwoPointer:
		return "2pt"
	case ThreePointer:
		return "3pt"
	default:
		return ""
	}
}

// ParseShot accepts "ft", "2pt" and "3pt".
func ParseShot(s string) (Shot, error) {
	switch s {
	case "ft":
		return FreeThrow, nil
	case "2pt":
		return TwoPointer, nil
	case "3pt":
		return ThreePointer, nil
	default:
		return 0, fmt.Errorf("%w: shot %q", ErrUnknownStat, s)
	}
}

func (s Shot) primitives() (made, attempted PrimitiveStat) {
	switch s {
	case TwoPointer:
		return TwoPointMade, TwoPointAttempt
	case ThreePointer:
		return ThreePointMade, ThreePointAttempt
	default:
		return FreeThrowMade, FreeThrowAttempt
	}
}
