package dom

import (
	"strings"
	"testing"
)

// TestMarkOnce tests the write-once processing marker.
func TestMarkOnce(t *testing.T) {
	t.Parallel()

	t.Run("first mark claims the node", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div id="post"></div></body></html>`)
		post := doc.Find(ByAttr("id", "post"))

		if !doc.MarkOnce(post, "data-fcp-processed", "1") {
			t.Error("expected first mark to claim the node")
		}
		if doc.MarkOnce(post, "data-fcp-processed", "1") {
			t.Error("expected second mark to be rejected")
		}
		if !doc.IsMarked(post, "data-fcp-processed") {
			t.Error("expected the marker to be readable afterwards")
		}
	})

	t.Run("concurrent marks claim exactly once", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div id="post"></div></body></html>`)
		post := doc.Find(ByAttr("id", "post"))

		results := make(chan bool, 20)
		for i := 0; i < 20; i++ {
			go func() {
				results <- doc.MarkOnce(post, "data-fcp-processed", "1")
			}()
		}

		claimed := 0
		for i := 0; i < 20; i++ {
			if <-results {
				claimed++
			}
		}
		if claimed != 1 {
			t.Errorf("expected exactly 1 claim, got %d", claimed)
		}
	})
}

// TestHideAndHighlight tests visual suppression annotations.
func TestHideAndHighlight(t *testing.T) {
	t.Parallel()

	t.Run("hide sets marker reason and style", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div id="post" style="color: red"></div></body></html>`)
		post := doc.Find(ByAttr("id", "post"))

		doc.Hide(post, "sponsored")

		if !doc.IsHidden(post) {
			t.Error("expected the post to be hidden")
		}
		if got := doc.GetAttr(post, AttrReason); got != "sponsored" {
			t.Errorf("expected reason 'sponsored', got %q", got)
		}
		style := doc.GetAttr(post, "style")
		if !strings.Contains(style, "display: none") {
			t.Errorf("expected style to hide the post, got %q", style)
		}
		if !strings.Contains(style, "color: red") {
			t.Errorf("expected existing style to survive, got %q", style)
		}
	})

	t.Run("highlight keeps the post visible", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div id="post"></div></body></html>`)
		post := doc.Find(ByAttr("id", "post"))

		doc.Highlight(post, "keyword: crypto")

		if doc.IsHidden(post) {
			t.Error("expected a highlighted post to stay visible")
		}
		if !doc.IsHighlighted(post) {
			t.Error("expected the post to carry the highlight marker")
		}
		style := doc.GetAttr(post, "style")
		if !strings.Contains(style, "outline") {
			t.Errorf("expected an outline style, got %q", style)
		}
	})

	t.Run("render reflects annotations", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div id="post"></div></body></html>`)
		post := doc.Find(ByAttr("id", "post"))
		doc.Hide(post, "suggested")

		var out strings.Builder
		if err := doc.Render(&out); err != nil {
			t.Fatalf("failed to render: %v", err)
		}
		if !strings.Contains(out.String(), AttrHidden) {
			t.Errorf("expected rendered output to carry %s, got %q", AttrHidden, out.String())
		}
	})
}

// TestActivate tests synthetic activation delivery.
func TestActivate(t *testing.T) {
	t.Parallel()

	t.Run("records activation count", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div role="button" id="btn"></div></body></html>`)
		btn := doc.Find(ByAttr("id", "btn"))

		doc.Activate(btn)
		doc.Activate(btn)

		if got := doc.ActivationCount(btn); got != 2 {
			t.Errorf("expected 2 activations, got %d", got)
		}
	})

	t.Run("handlers run in registration order and may mutate", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div role="button" id="btn"></div></body></html>`)
		btn := doc.Find(ByAttr("id", "btn"))
		body := doc.Find(ByTag("body"))

		var order []string
		doc.RegisterActivation(func(n *Node) {
			order = append(order, "first")
			// A handler rendering a menu must not deadlock against the
			// document lock held during activation.
			doc.Mutate(func() {
				menu, err := ParseFragment(strings.NewReader(`<div role="menu"></div>`), body)
				if err != nil {
					t.Errorf("failed to parse fragment: %v", err)
					return
				}
				for _, m := range menu {
					body.AppendChild(m)
				}
			})
		})
		doc.RegisterActivation(func(n *Node) {
			order = append(order, "second")
		})

		doc.Activate(btn)

		if len(order) != 2 || order[0] != "first" || order[1] != "second" {
			t.Errorf("expected handlers in registration order, got %v", order)
		}
		if doc.Find(ByRole("menu")) == nil {
			t.Error("expected the handler's mutation to be visible")
		}
	})

	t.Run("unregistered handlers stop firing", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div id="btn"></div></body></html>`)
		btn := doc.Find(ByAttr("id", "btn"))

		fired := 0
		id := doc.RegisterActivation(func(n *Node) { fired++ })

		doc.Activate(btn)
		doc.UnregisterActivation(id)
		doc.Activate(btn)

		if fired != 1 {
			t.Errorf("expected 1 handler invocation, got %d", fired)
		}
	})
}

// TestSubscribe tests structural-change notification.
func TestSubscribe(t *testing.T) {
	t.Parallel()

	t.Run("mutations signal subscribers", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body></body></html>`)
		id, ch := doc.Subscribe()
		defer doc.Unsubscribe(id)

		doc.Mutate(func() {})

		select {
		case <-ch:
		default:
			t.Error("expected a change signal after mutate")
		}
	})

	t.Run("signals coalesce instead of queueing", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body></body></html>`)
		id, ch := doc.Subscribe()
		defer doc.Unsubscribe(id)

		doc.Mutate(func() {})
		doc.Mutate(func() {})

		select {
		case <-ch:
		default:
			t.Fatal("expected at least one change signal")
		}
		select {
		case <-ch:
			t.Error("expected the second signal to coalesce into the first")
		default:
		}
	})

	t.Run("unsubscribed channels stop receiving", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body></body></html>`)
		id, ch := doc.Subscribe()
		doc.Unsubscribe(id)

		doc.Mutate(func() {})

		select {
		case <-ch:
			t.Error("expected no signal after unsubscribe")
		default:
		}
	})

	t.Run("annotations do not signal subscribers", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div id="post"></div></body></html>`)
		post := doc.Find(ByAttr("id", "post"))
		id, ch := doc.Subscribe()
		defer doc.Unsubscribe(id)

		doc.Hide(post, "sponsored")
		doc.MarkOnce(post, "data-fcp-processed", "1")

		select {
		case <-ch:
			t.Error("expected annotation writes to stay silent")
		default:
		}
	})
}

// TestStructuralEdits tests fragment parsing and attach/detach.
func TestStructuralEdits(t *testing.T) {
	t.Parallel()

	t.Run("fragment nodes attach inside mutate", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div role="feed"></div></body></html>`)
		feed := doc.Find(ByRole("feed"))

		doc.Mutate(func() {
			posts, err := ParseFragment(strings.NewReader(`<div role="article">new post</div>`), feed)
			if err != nil {
				t.Errorf("failed to parse fragment: %v", err)
				return
			}
			for _, p := range posts {
				feed.AppendChild(p)
			}
		})

		post := doc.Find(ByRole("article"))
		if post == nil {
			t.Fatal("expected the attached post to be findable")
		}
		if got := post.VisibleText(); got != "new post" {
			t.Errorf("expected 'new post', got %q", got)
		}
	})

	t.Run("detach removes a subtree", func(t *testing.T) {
		t.Parallel()

		doc := parseDoc(t, `<html><body><div role="menu"><div role="menuitem">Unfollow</div></div></body></html>`)
		menu := doc.Find(ByRole("menu"))

		doc.Mutate(func() {
			menu.Detach()
		})

		if doc.Find(ByRole("menuitem")) != nil {
			t.Error("expected menu items to disappear with their menu")
		}
	})
}
