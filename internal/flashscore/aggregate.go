package flashscore

import (
	"strconv"
	"time"

	"github.com/courtline/matchdata/internal/model"
)

// Aggregator coerces mapped records and accumulates the output rows in
// encounter order. State, league and season context are attached
// verbatim to every row.
type Aggregator struct {
	state  string
	league string
	season model.Season
	rows   []model.MatchRecord
}

// NewAggregator creates an aggregator for one run.
func NewAggregator(state, league string, season model.Season) *Aggregator {
	return &Aggregator{state: state, league: league, season: season}
}

// coerce converts one score field to an integer.
func coerce(field, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &FieldCoercionError{Field: field, Value: value}
	}
	return n, nil
}

// quarterNames pairs the coercion error labels with their quarter index.
// Index 4 is the overtime period.
var quarterNames = [5][2]string{
	{"h_q1", "a_q1"},
	{"h_q2", "a_q2"},
	{"h_q3", "a_q3"},
	{"h_q4", "a_q4"},
	{"h_ot", "a_ot"},
}

// Add coerces one raw record into a typed row and appends it. A
// non-numeric score field yields a *FieldCoercionError and no row.
func (a *Aggregator) Add(raw rawRecord, tipoff time.Time) error {
	homePts, err := coerce("home_pts", raw.HomePts)
	if err != nil {
		return err
	}
	awayPts, err := coerce("away_pts", raw.AwayPts)
	if err != nil {
		return err
	}

	var quarters [5][2]int
	for q := range raw.Quarters {
		for side := range raw.Quarters[q] {
			n, err := coerce(quarterNames[q][side], raw.Quarters[q][side])
			if err != nil {
				return err
			}
			quarters[q][side] = n
		}
	}

	a.rows = append(a.rows, model.MatchRecord{
		State:   a.state,
		League:  a.league,
		Season:  a.season.Label,
		Tipoff:  tipoff,
		Home:    raw.Home,
		Away:    raw.Away,
		Winner:  model.DeriveWinner(homePts, awayPts),
		HomePts: homePts,
		AwayPts: awayPts,
		HomeQ1:  quarters[0][0],
		AwayQ1:  quarters[0][1],
		HomeQ2:  quarters[1][0],
		AwayQ2:  quarters[1][1],
		HomeQ3:  quarters[2][0],
		AwayQ3:  quarters[2][1],
		HomeQ4:  quarters[3][0],
		AwayQ4:  quarters[3][1],
		HomeOT:  quarters[4][0],
		AwayOT:  quarters[4][1],
	})
	return nil
}

// Rows returns the accumulated rows in the order they were added.
func (a *Aggregator) Rows() []model.MatchRecord {
	return a.rows
}
