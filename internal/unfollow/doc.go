// Package unfollow drives the menu workflow that unfollows a post's
// source.
//
// # State machine
//
// A run moves through Idle → Guarded → MenuOpening → MenuOpen →
// ActionSelected → Confirming → Done, with Failed as the error terminal.
// The Guarded stage is synchronous and can short-circuit into five
// non-error terminals: missing source, whitelisted, friend-protected,
// already handled this session, and queued (dry run). Every terminal maps
// to exactly one Outcome value.
//
// # Interaction contract
//
// Menus and dialogs may render anywhere in the document, not inside the
// post, so after the trigger activation every search covers the whole
// tree. Each activation is followed by a settle delay that gives the
// page's scripts time to render; the document lock is never held across
// a delay. The absence of a confirmation dialog is success, not failure:
// some flows complete on the menu click alone.
//
// # Failure handling
//
// A failed run records the failure signal, counts the error, notifies,
// and tries once to close any dialog left open. It never retries: the
// next scan pass will not see the post again (it stays claimed), and
// batch execution gives the user an explicit way to try again.
package unfollow
