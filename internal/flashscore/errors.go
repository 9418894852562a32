package flashscore

import "fmt"

// MalformedRecordError reports a scraped entry whose token count matches
// no known record shape.
type MalformedRecordError struct {
	Tokens []string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("flashscore: unknown record shape with %d tokens", len(e.Tokens))
}

// InvalidDateFormatError reports a date-time stamp that does not match
// the "dd.mm. HH:MM" pattern the results page renders.
type InvalidDateFormatError struct {
	Text string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("flashscore: invalid date stamp %q", e.Text)
}

// FieldCoercionError reports a score field that is not an integer.
type FieldCoercionError struct {
	Field string
	Value string
}

func (e *FieldCoercionError) Error() string {
	return fmt.Sprintf("flashscore: field %s is not numeric: %q", e.Field, e.Value)
}
