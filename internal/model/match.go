// Package model defines the shared data types for match acquisition.
package model

import "time"

// Winner identifies which side took a match.
type Winner string

const (
	WinnerHome Winner = "home"
	WinnerAway Winner = "away"
	WinnerDraw Winner = "draw"
)

// DeriveWinner compares final scores. Equal totals, including 0-0, are a draw.
func DeriveWinner(homePts, awayPts int) Winner {
	switch {
	case homePts > awayPts:
		return WinnerHome
	case awayPts > homePts:
		return WinnerAway
	default:
		return WinnerDraw
	}
}

// MatchRecord is one fully-typed row of the results table. Quarter scores
// are always populated; matches without an overtime period carry zeros in
// the OT columns rather than nulls.
type MatchRecord struct {
	State   string    `csv:"state"`
	League  string    `csv:"league"`
	Season  string    `csv:"season"`
	Tipoff  time.Time `csv:"ts"`
	Home    string    `csv:"home"`
	Away    string    `csv:"away"`
	Winner  Winner    `csv:"winner"`
	HomePts int       `csv:"home_pts"`
	AwayPts int       `csv:"away_pts"`
	HomeQ1  int       `csv:"h_q1"`
	AwayQ1  int       `csv:"a_q1"`
	HomeQ2  int       `csv:"h_q2"`
	AwayQ2  int       `csv:"a_q2"`
	HomeQ3  int       `csv:"h_q3"`
	AwayQ3  int       `csv:"a_q3"`
	HomeQ4  int       `csv:"h_q4"`
	AwayQ4  int       `csv:"a_q4"`
	HomeOT  int       `csv:"h_ot"`
	AwayOT  int       `csv:"a_ot"`
}

// MatchColumns is the canonical column order shared by the CSV and
// database writers. It must stay aligned with MatchRecord.Values.
func MatchColumns() []string {
	return []string{
		"state", "league", "season", "ts", "home", "away", "winner",
		"home_pts", "away_pts",
		"h_q1", "a_q1", "h_q2", "a_q2", "h_q3", "a_q3", "h_q4", "a_q4",
		"h_ot", "a_ot",
	}
}

// Values returns the row in MatchColumns order.
func (r MatchRecord) Values() []any {
	return []any{
		r.State, r.League, r.Season, r.Tipoff, r.Home, r.Away, string(r.Winner),
		r.HomePts, r.AwayPts,
		r.HomeQ1, r.AwayQ1, r.HomeQ2, r.AwayQ2, r.HomeQ3, r.AwayQ3, r.HomeQ4, r.AwayQ4,
		r.HomeOT, r.AwayOT,
	}
}
