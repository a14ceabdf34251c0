package unfollow

import "errors"

// Sentinel errors for workflow failures. Each sentinel is also the
// failure signal recorded on the executed target, so history rows can be
// grouped by failure class. We use sentinel errors rather than custom
// error types because callers only ever branch on identity, never on
// embedded fields.
var (
	// ErrMissingSource indicates the post carried no usable source
	// identity, so no interaction was attempted.
	ErrMissingSource = errors.New("post has no usable source")

	// ErrMenuButtonNotFound indicates no menu trigger matched inside the
	// post subtree.
	ErrMenuButtonNotFound = errors.New("menu trigger not found in post")

	// ErrMenuDidNotOpen indicates the trigger was activated but no menu
	// items appeared anywhere in the document after the settle delay.
	ErrMenuDidNotOpen = errors.New("menu did not open")

	// ErrActionNotFound indicates the menu opened but held no item
	// matching an unfollow phrase.
	ErrActionNotFound = errors.New("no unfollow action in menu")

	// ErrCancelled indicates the context was cancelled mid-workflow.
	ErrCancelled = errors.New("automation cancelled")
)

// signalName maps a workflow error to the stable signal string recorded
// on executed targets. Unrecognized errors, including recovered panics,
// collapse into "fault".
func signalName(err error) string {
	switch {
	case errors.Is(err, ErrMissingSource):
		return "missing_source"
	case errors.Is(err, ErrMenuButtonNotFound):
		return "menu_button_not_found"
	case errors.Is(err, ErrMenuDidNotOpen):
		return "menu_did_not_open"
	case errors.Is(err, ErrActionNotFound):
		return "action_not_found"
	case errors.Is(err, ErrCancelled):
		return "cancelled"
	default:
		return "fault"
	}
}
