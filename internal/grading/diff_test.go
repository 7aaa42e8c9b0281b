package grading

import (
	"strings"
	"testing"
)

func TestBuildDiffTokens(t *testing.T) {
	tokens := BuildDiffTokens("the quick fox", "quick brown fox")

	var adds, removes, matches []string
	for _, tok := range tokens {
		switch tok.Kind {
		case DiffAdd:
			adds = append(adds, tok.Text)
		case DiffRemove:
			removes = append(removes, tok.Text)
		case DiffMatch:
			matches = append(matches, tok.Text)
		}
	}

	if len(adds) != 1 || adds[0] != "brown" {
		t.Errorf("adds = %v, want [brown]", adds)
	}
	if len(removes) != 1 || removes[0] != "the" {
		t.Errorf("removes = %v, want [the]", removes)
	}
	if len(matches) != 2 || matches[0] != "quick" || matches[1] != "fox" {
		t.Errorf("matches = %v, want [quick fox]", matches)
	}
}

func TestDiffTokenCountsRoundTrip(t *testing.T) {
	tests := []struct {
		submitted string
		reference string
	}{
		{"alpha beta", "beta gamma"},
		{"", "some reference words"},
		{"only submitted words", ""},
		{"", ""},
		{"identical text here", "identical text here"},
		{"a b c d e", "e d c b a"},
	}

	for _, tc := range tests {
		tokens := BuildDiffTokens(tc.submitted, tc.reference)
		summary := SummarizeDiff(tokens)

		submittedCount := len(strings.Fields(tc.submitted))
		referenceCount := len(strings.Fields(tc.reference))

		if summary.Match+summary.Remove != submittedCount {
			t.Errorf("(%q, %q): match+remove = %d, want %d",
				tc.submitted, tc.reference, summary.Match+summary.Remove, submittedCount)
		}
		if summary.Match+summary.Add != referenceCount {
			t.Errorf("(%q, %q): match+add = %d, want %d",
				tc.submitted, tc.reference, summary.Match+summary.Add, referenceCount)
		}
	}
}

func TestDiffEmptyInputs(t *testing.T) {
	if tokens := BuildDiffTokens("", ""); len(tokens) != 0 {
		t.Errorf("empty diff = %v, want no tokens", tokens)
	}

	tokens := BuildDiffTokens("", "all added")
	for _, tok := range tokens {
		if tok.Kind != DiffAdd {
			t.Errorf("token %q kind = %q, want add", tok.Text, tok.Kind)
		}
	}

	tokens = BuildDiffTokens("all removed", "")
	for _, tok := range tokens {
		if tok.Kind != DiffRemove {
			t.Errorf("token %q kind = %q, want remove", tok.Text, tok.Kind)
		}
	}
}

func TestDiffWhitespaceOnlyIsEmpty(t *testing.T) {
	if tokens := BuildDiffTokens("   \t  ", "\n"); len(tokens) != 0 {
		t.Errorf("whitespace-only diff = %v, want no tokens", tokens)
	}
}

func TestDiffPreservesOrder(t *testing.T) {
	tokens := BuildDiffTokens("one two three", "one three")

	got := make([]string, len(tokens))
	for i, tok := range tokens {
		got[i] = string(tok.Kind) + ":" + tok.Text
	}
	want := []string{"match:one", "remove:two", "match:three"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("tokens = %v, want %v", got, want)
	}
}
