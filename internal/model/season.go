package model

import (
	"regexp"
	"strconv"

	"github.com/rotisserie/eris"
)

var seasonLabelRe = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// Season is a league season label parsed into its calendar years.
type Season struct {
	Label     string
	StartYear int
	EndYear   int
}

// ParseSeason parses a "yyyy-yyyy" season label.
func ParseSeason(label string) (Season, error) {
	m := seasonLabelRe.FindStringSubmatch(label)
	if m == nil {
		return Season{}, eris.Errorf("model: invalid season label %q, want yyyy-yyyy", label)
	}
	start, err := strconv.Atoi(m[1])
	if err != nil {
		return Season{}, eris.Wrapf(err, "model: season start year %q", m[1])
	}
	end, err := strconv.Atoi(m[2])
	if err != nil {
		return Season{}, eris.Wrapf(err, "model: season end year %q", m[2])
	}
	return Season{Label: label, StartYear: start, EndYear: end}, nil
}
