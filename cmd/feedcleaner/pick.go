package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/dom"
	"github.com/SysAdminDoc/Facebook-Feed-Cleaner-Pro/internal/picker"
)

// pickPostPred matches one feed post container, the same shapes the
// scanner walks.
var pickPostPred = dom.Any(
	dom.ByRole("article"),
	dom.ByAttrPrefix("data-pagelet", "FeedUnit"),
)

// NewPickCmd creates the pick command.
func NewPickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pick <page.html>",
		Short: "Derive a filter suggestion from one element on the page",
		Long: `Pick runs element-picking mode against a saved page: it arms a one-shot
pick session, activates the chosen element, and prints the resulting
filter suggestion. The suggestion is a keyword candidate cut from the
element's visible text, plus the author of the enclosing post when the
element sits inside one.

The element is chosen by post position (--post) or by a text fragment
it contains (--text). With --text, the tightest element containing the
fragment wins.

Examples:
  # Suggest a filter from the second post on the page
  feedcleaner pick feed.html --post 2

  # Suggest a filter from the element containing the phrase
  feedcleaner pick feed.html --text "limited time offer"`,
		Args: cobra.ExactArgs(1),
		RunE: runPickCmd,
	}

	cmd.Flags().Int("post", 1,
		"Pick the Nth post on the page (1-based)")
	cmd.Flags().String("text", "",
		"Pick the tightest element containing this text")

	return cmd
}

// runPickCmd executes the pick command.
func runPickCmd(cmd *cobra.Command, args []string) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	logger := setupLogger(verbose)

	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	text, err := cmd.Flags().GetString("text")
	if err != nil {
		return err
	}
	index, err := cmd.Flags().GetInt("post")
	if err != nil {
		return err
	}

	node, err := pickTarget(doc, text, index)
	if err != nil {
		return err
	}

	p := picker.New(doc, picker.WithLogger(logger))
	if err := p.Start(); err != nil {
		return err
	}
	defer p.Stop()

	doc.Activate(node)

	select {
	case s := <-p.Suggestions():
		if s.Keyword == "" && s.SourceName == "" {
			cmd.Println("Nothing to suggest: the picked element has no visible text")
			return nil
		}
		if s.Keyword != "" {
			cmd.Printf("keyword: %s\n", s.Keyword)
		}
		if s.SourceName != "" {
			cmd.Printf("source:  %s\n", s.SourceName)
		}
		return nil
	default:
		return errors.New("pick produced no suggestion")
	}
}

// pickTarget resolves the element to activate. A text fragment selects
// the tightest element containing it; otherwise the post index selects
// a whole post container.
func pickTarget(doc *dom.Document, text string, index int) (*dom.Node, error) {
	if text != "" {
		var best *dom.Node
		for _, n := range doc.FindAll(func(n *dom.Node) bool {
			return n.IsElement() && strings.Contains(n.VisibleText(), text)
		}) {
			if best == nil || len(n.VisibleText()) < len(best.VisibleText()) {
				best = n
			}
		}
		if best == nil {
			return nil, fmt.Errorf("no element on the page contains %q", text)
		}
		return best, nil
	}

	posts := doc.FindAll(pickPostPred)
	if len(posts) == 0 {
		return nil, errors.New("no posts on the page")
	}
	if index < 1 || index > len(posts) {
		return nil, fmt.Errorf("page has %d post(s), cannot pick post %d", len(posts), index)
	}
	return posts[index-1], nil
}
