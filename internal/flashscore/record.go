package flashscore

// Token counts of the two record shapes the page renders. Regulation
// games carry four quarter pairs; overtime games add a fifth pair.
const (
	regulationTokens = 13
	overtimeTokens   = 15
)

// rawRecord is the positional unpacking of one entry. Every field is
// still text; coercion happens in the aggregator.
type rawRecord struct {
	Stamp    string // "dd.mm. HH:MM"
	Home     string
	Away     string
	HomePts  string
	AwayPts  string
	Quarters [5][2]string // home/away per period, index 4 = overtime
	Overtime bool
}

// MapTokens classifies a token list by shape and maps positions to named
// fields. Regulation records get zeroed overtime columns so every output
// row is fully populated. Any other length is a *MalformedRecordError.
func MapTokens(tokens []string) (rawRecord, error) {
	switch len(tokens) {
	case regulationTokens, overtimeTokens:
	default:
		return rawRecord{}, &MalformedRecordError{Tokens: tokens}
	}

	r := rawRecord{
		Stamp:   tokens[0],
		Home:    tokens[1],
		Away:    tokens[2],
		HomePts: tokens[3],
		AwayPts: tokens[4],
	}
	for q := 0; q < 4; q++ {
		r.Quarters[q] = [2]string{tokens[5+2*q], tokens[6+2*q]}
	}
	if len(tokens) == overtimeTokens {
		r.Quarters[4] = [2]string{tokens[13], tokens[14]}
		r.Overtime = true
	} else {
		r.Quarters[4] = [2]string{"0", "0"}
	}
	return r, nil
}
