// Package main provides the entry point for the feedcleaner CLI.
//
// feedcleaner classifies the posts of a saved social-feed page against a
// rule set, hides or highlights the matches, and can drive the page's
// own action menus to unfollow the sources behind them.
//
// Usage:
//
//	feedcleaner clean feed.html
//	feedcleaner watch feed.html
//	feedcleaner analyze feed.html --json
//
// See --help for all available options.
package main

// main is the entry point for feedcleaner.
func main() {
	Execute()
}
