package extract

import (
	"net/url"
	"strings"
)

// LinkShape classifies what kind of entity a canonical link points at.
type LinkShape int

const (
	// LinkUnknown means the link identifies no recognizable entity kind.
	LinkUnknown LinkShape = iota

	// LinkGroup is a group container link.
	LinkGroup

	// LinkPage is a page (business or brand) link.
	LinkPage

	// LinkPerson is a personal profile link.
	LinkPerson
)

// String returns the human-readable shape name.
func (s LinkShape) String() string {
	switch s {
	case LinkGroup:
		return "group"
	case LinkPage:
		return "page"
	case LinkPerson:
		return "person"
	default:
		return "unknown"
	}
}

// skippedSchemes are href prefixes that can never carry a source
// identity.
var skippedSchemes = []string{"javascript:", "mailto:", "tel:", "data:"}

// reservedSegments are top-level path segments that are site features,
// not vanity profile slugs. A bare slug outside this set is treated as
// a personal profile URL.
var reservedSegments = map[string]bool{
	"ads":           true,
	"bookmarks":     true,
	"business":      true,
	"events":        true,
	"friends":       true,
	"gaming":        true,
	"groups":        true,
	"hashtag":       true,
	"help":          true,
	"l.php":         true,
	"login":         true,
	"marketplace":   true,
	"memories":      true,
	"p":             true,
	"pages":         true,
	"people":        true,
	"permalink.php": true,
	"photo":         true,
	"photo.php":     true,
	"places":        true,
	"privacy":       true,
	"reel":          true,
	"reels":         true,
	"saved":         true,
	"search":        true,
	"settings":      true,
	"sharer":        true,
	"stories":       true,
	"story.php":     true,
	"watch":         true,
}

// CanonicalLink normalizes an anchor href into the canonical source
// identity used for session dedupe. The host and tracking parameters
// are stripped and trailing slashes removed; the id query parameter is
// preserved for profile.php links because it is the identity there.
// It returns "" for hrefs that cannot identify a source.
func CanonicalLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" {
		return ""
	}
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(href, scheme) {
			return ""
		}
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	// Absolute links to other domains are outbound content, not source
	// identity.
	if u.Host != "" && !feedHost(u.Host) {
		return ""
	}

	path := u.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != "/" {
		path = strings.TrimSuffix(path, "/")
	}
	if path == "" || path == "/" {
		return ""
	}

	if path == "/profile.php" {
		id := u.Query().Get("id")
		if id == "" {
			return ""
		}
		return "/profile.php?id=" + id
	}
	return path
}

// feedHost reports whether the host belongs to the feed site, including
// its regional and mobile subdomains.
func feedHost(host string) bool {
	host = strings.ToLower(host)
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host == "facebook.com" || strings.HasSuffix(host, ".facebook.com") ||
		host == "fb.com" || strings.HasSuffix(host, ".fb.com")
}

// ClassifyLink determines the entity kind behind a canonical link.
//
// The rules mirror the site's URL namespace: /groups/ prefixes are
// groups, /pages/ and /p/ prefixes are pages, /profile.php?id= and
// /people/ are personal profiles, and a bare slug outside the reserved
// namespace is a vanity profile URL. Everything else is unknown.
func ClassifyLink(link string) LinkShape {
	switch {
	case strings.HasPrefix(link, "/groups/"):
		return LinkGroup
	case strings.HasPrefix(link, "/pages/"), strings.HasPrefix(link, "/p/"):
		return LinkPage
	case strings.HasPrefix(link, "/profile.php?id="), strings.HasPrefix(link, "/people/"):
		return LinkPerson
	}

	seg := strings.TrimPrefix(link, "/")
	if seg != "" && !strings.ContainsAny(seg, "/?") && !reservedSegments[strings.ToLower(seg)] {
		return LinkPerson
	}
	return LinkUnknown
}
