// Package picker implements element-picking mode. While a session is
// armed, the next activation anywhere in the document is captured and
// the activated element is turned into a filter Suggestion: a keyword
// candidate cut from the element's own text, plus the author name of
// the enclosing post when there is one.
//
// # One shot
//
// Start arms the picker for exactly one pick and the first activation
// disarms it again; Stop disarms without producing anything. The pick
// observes the activation rather than swallowing it, so host scripts
// reacting to the same click still run. Callers pause the scan
// scheduler for the duration of a session. An automation run already
// in flight keeps running, and its synthetic clicks can win the race
// for the pick.
package picker
