package model

import "testing"

// TestSourceUsable tests the Usable helper.
func TestSourceUsable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source *Source
		want   bool
	}{
		{name: "nil source", source: nil, want: false},
		{name: "missing link", source: &Source{Name: "Acme"}, want: false},
		{name: "missing name", source: &Source{Link: "https://example.com/acme"}, want: false},
		{name: "complete", source: &Source{Name: "Acme", Link: "https://example.com/acme"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.source.Usable(); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestSourcePersonLike tests the PersonLike helper.
func TestSourcePersonLike(t *testing.T) {
	t.Parallel()

	if (&Source{IsGroup: true}).PersonLike() {
		t.Error("group should not be person-like")
	}
	if (&Source{IsPage: true}).PersonLike() {
		t.Error("page should not be person-like")
	}
	if !(&Source{}).PersonLike() {
		t.Error("plain source should be person-like")
	}
}

// TestNormalizeName tests whitespace collapsing and NFC normalization.
func TestNormalizeName(t *testing.T) {
	t.Parallel()

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()

		got := NormalizeName("  Acme \t Ads \n")
		if got != "Acme Ads" {
			t.Errorf("expected %q, got %q", "Acme Ads", got)
		}
	})

	t.Run("composes decomposed codepoints", func(t *testing.T) {
		t.Parallel()

		// "é" as base letter plus combining accent vs the composed form.
		decomposed := "José"
		composed := "José"
		if NormalizeName(decomposed) != NormalizeName(composed) {
			t.Error("expected decomposed and composed forms to normalize equal")
		}
	})
}

// TestSameName tests the batch-matching equality rule.
func TestSameName(t *testing.T) {
	t.Parallel()

	if !SameName("Acme  Ads", "Acme Ads") {
		t.Error("expected names differing only in whitespace to match")
	}
	if SameName("Acme Ads", "acme ads") {
		t.Error("expected matching to be case-sensitive")
	}
}

// TestContainsName tests whitelist membership matching.
func TestContainsName(t *testing.T) {
	t.Parallel()

	list := []string{"Jane  Doe", "Acme Ads"}

	if !ContainsName(list, "Jane Doe") {
		t.Error("expected whitespace differences to still match")
	}
	if ContainsName(list, "jane doe") {
		t.Error("expected matching to be case-sensitive")
	}
	if ContainsName(nil, "Jane Doe") {
		t.Error("expected no match against an empty list")
	}
}
