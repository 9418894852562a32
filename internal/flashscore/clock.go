package flashscore

import (
	"time"

	"github.com/courtline/matchdata/internal/model"
)

// stampLayout matches the page's date stamps: day, month, 24h time, no year.
const stampLayout = "02.01. 15:04"

// SeasonClock resolves the year omitted from scraped date stamps. The
// page lists matches newest-first, so an entry for December directly
// after one for January marks the crossing back into the season's first
// calendar year; from that point on every stamp resolves to the start
// year. The trigger is exactly that adjacency: missing or reordered
// entries will not roll the year over. Known limitation of the source
// data, reproduced as-is.
//
// A clock holds per-run state and must not be shared across runs.
type SeasonClock struct {
	season    model.Season
	lastMonth time.Month
	year      int
}

// NewSeasonClock creates a clock starting at the season's end year.
func NewSeasonClock(season model.Season) *SeasonClock {
	return &SeasonClock{season: season, year: season.EndYear}
}

// Resolve parses one date stamp and attaches the tracked year, producing
// a fully-qualified UTC timestamp.
func (c *SeasonClock) Resolve(text string) (time.Time, error) {
	t, err := time.Parse(stampLayout, text)
	if err != nil {
		return time.Time{}, &InvalidDateFormatError{Text: text}
	}
	if c.lastMonth == time.January && t.Month() == time.December {
		c.year = c.season.StartYear
	}
	c.lastMonth = t.Month()
	return time.Date(c.year, t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}
