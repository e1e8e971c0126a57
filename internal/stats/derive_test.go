package stats

import (
	"HoopStatApi/internal/assert"
	"encoding/json"
	"testing"
)

// scenarioA is a triple-double: 11 points, 10 rebounds, 11 assists.
var scenarioA = Box{
	Ftm: 2, Fta: 3,
	TwoPm: 3, TwoPa: 5,
	ThreePm: 1, ThreePa: 2,
	OffReb: 4, DefReb: 6,
	Ast: 11, Stl: 2, Blk: 1,
}

func TestDerive(t *testing.T) {
	d := Derive(scenarioA)

	assert.Equal(t, d.Points, 11)
	assert.Equal(t, d.Rebounds, 10)
	assert.Equal(t, d.FieldGoalsMade, 4)
	assert.Equal(t, d.FieldGoalsAttempted, 7)
	assert.Equal(t, d.FieldGoalPercent, Percentage(57))
	assert.Equal(t, d.ThreePointPercent, Percentage(50))
	assert.Equal(t, d.FreeThrowPercent, Percentage(67))
	assert.Equal(t, d.ImpactScore, 11+10+11+2+1)
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name      string
		made      int
		attempted int
		want      Percentage
	}{
		{name: "No Attempts", made: 0, attempted: 0, want: 0},
		{name: "Made Without Attempts", made: 3, attempted: 0, want: 0},
		{name: "Perfect", made: 4, attempted: 4, want: 100},
		{name: "Rounds Up", made: 2, attempted: 3, want: 67},
		{name: "Rounds Down", made: 1, attempted: 3, want: 33},
		{name: "Half Rounds Up", made: 1, attempted: 8, want: 13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Percent(tt.made, tt.attempted), tt.want)
		})
	}
}

func TestPercentageString(t *testing.T) {
	assert.Equal(t, Percentage(0).String(), "0%")
	assert.Equal(t, Percentage(47).String(), "47%")

	b, err := Percentage(100).MarshalJSON()
	assert.NilError(t, err)
	assert.Equal(t, string(b), `"100%"`)
}

func TestPercentageJSON(t *testing.T) {
	d := Derive(scenarioA)

	b, err := json.Marshal(d)
	assert.NilError(t, err)

	var got Derived
	err = json.Unmarshal(b, &got)
	assert.NilError(t, err)
	assert.Equal(t, got, d)

	tests := []struct {
		name  string
		input string
	}{
		{"NoPercentSign", `"47"`},
		{"NotQuoted", `47`},
		{"NotANumber", `"abc%"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Percentage
			err := json.Unmarshal([]byte(tt.input), &p)
			assert.Equal(t, err != nil, true)
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		box   Box
		count int
		badge string
	}{
		{name: "Empty", box: Box{}, count: 0, badge: BadgeStandard},
		{name: "Scorer", box: Box{TwoPm: 10}, count: 1, badge: BadgeStandard},
		{name: "Points And Rebounds", box: Box{TwoPm: 5, OffReb: 3, DefReb: 7}, count: 2,
			badge: BadgeDoubleDouble},
		{name: "Defensive", box: Box{Stl: 10, Blk: 10}, count: 2, badge: BadgeDoubleDouble},
		{name: "Scenario A", box: scenarioA, count: 3, badge: BadgeTripleDouble},
		{name: "Nine Is Not Ten", box: Box{Ftm: 9, DefReb: 9, Ast: 9}, count: 0,
			badge: BadgeStandard},
		{name: "Five By Ten", box: Box{TwoPm: 5, DefReb: 10, Ast: 10, Stl: 10, Blk: 10}, count: 5,
			badge: BadgeTripleDouble},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.box)
			assert.Equal(t, c.DoubleDigitCount, tt.count)
			assert.Equal(t, c.Badge(), tt.badge)
			if c.TripleDouble {
				assert.Equal(t, c.DoubleDouble, true)
			}
		})
	}
}
