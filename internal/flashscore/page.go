package flashscore

import "time"

// Element is one rendered node on the results page.
type Element interface {
	Text() (string, error)
	ScrollIntoView() error
	Click() error
	// WaitClickable blocks until the element is interactable or the
	// timeout elapses.
	WaitClickable(timeout time.Duration) error
}

// Page is the live results page the pipeline drives. Implementations
// wrap a real browser session; tests supply fakes.
type Page interface {
	// Find returns the first element matching the selector without
	// waiting. ok is false when no such element exists.
	Find(selector string) (el Element, ok bool, err error)
	FindAll(selector string) ([]Element, error)
}

// ExpandOutcome is the result of one attempt to activate the page's
// "load more" control.
type ExpandOutcome int

const (
	// Expanded means the control was clicked and more records should
	// now be present.
	Expanded ExpandOutcome = iota
	// NoMoreControl means the page has no expansion control left.
	NoMoreControl
	// TimedOut means the control exists but never became clickable.
	TimedOut
)

func (o ExpandOutcome) String() string {
	switch o {
	case Expanded:
		return "expanded"
	case NoMoreControl:
		return "no_more_control"
	case TimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}
