// Package extract pulls a source descriptor (the actor behind a post)
// out of a post's subtree.
//
// # Design Philosophy
//
// Feed markup is unstable and hostile to precise selectors, so the
// extractor runs a fixed, ordered list of structural matchers and takes
// the first one that yields a usable canonical link. Each matcher is a
// pure function over the post subtree, which makes the list trivial to
// reorder, extend, and test matcher by matcher.
//
// Extraction is heuristic by contract: a post with no recognizable
// source yields nil, and callers treat nil as "unknown source" rather
// than an error.
//
// # Link canonicalization
//
// Anchor hrefs arrive with hosts, tracking parameters, and trailing
// slashes that vary between renders of the same source. CanonicalLink
// reduces them to a stable path form that serves as the session-dedupe
// identity key.
package extract
