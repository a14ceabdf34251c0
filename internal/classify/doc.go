// Package classify decides whether a feed post is unwanted and why.
//
// # Detection order
//
// Checks run in a strict priority order and stop at the first hit:
// sponsored disclosure (badge text or ad-preferences link), then
// recommendation labels, then the user's keyword list. A post therefore
// carries exactly one reason, and a post that is both sponsored and
// keyword-matching is always reported as sponsored.
//
// # Obfuscation
//
// The sponsored badge is often rendered one letter per element to defeat
// literal text matching. Label comparison strips inner whitespace before
// comparing, which folds the per-letter rendering back into the plain
// label.
package classify
