package moderation

import (
	"math"
	"testing"
)

func testRules(t *testing.T) *RuleSet {
	t.Helper()
	return DefaultRuleSet()
}

func TestLexicalScan_MatchesInRulesetOrder(t *testing.T) {
	rules := &RuleSet{
		Version:         "test",
		ProhibitedTerms: []string{"zebra", "apple", "mango"},
	}
	if err := rules.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}

	flags, contrib := lexicalScan(rules, "mango smoothie with apple and zebra print")
	if len(flags) != 3 {
		t.Fatalf("expected 3 flags, got %d", len(flags))
	}
	// Flags follow declaration order, not occurrence order in the text.
	wantOrder := []string{"zebra", "apple", "mango"}
	for i, term := range wantOrder {
		if flags[i].Kind != KindLexical {
			t.Errorf("flag %d kind = %s, want lexical", i, flags[i].Kind)
		}
		if want := `contains prohibited term "` + term + `"`; flags[i].Detail != want {
			t.Errorf("flag %d detail = %q, want %q", i, flags[i].Detail, want)
		}
	}
	if math.Abs(contrib-0.9) > 1e-9 {
		t.Errorf("contribution = %v, want 0.9", contrib)
	}
}

func TestLexicalScan_SubstringContainment(t *testing.T) {
	rules := testRules(t)
	// Substring matching is deliberate: the term fires even when embedded in
	// a longer word.
	flags, contrib := lexicalScan(rules, "offering escorted tours of the city")
	if len(flags) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(flags))
	}
	if math.Abs(contrib-lexicalWeight) > 1e-9 {
		t.Errorf("contribution = %v, want %v", contrib, lexicalWeight)
	}
}

func TestLexicalScan_CleanText(t *testing.T) {
	rules := testRules(t)
	flags, contrib := lexicalScan(rules, "gently used sofa, pick up only")
	if len(flags) != 0 || contrib != 0 {
		t.Fatalf("expected nothing, got %d flags, contribution %v", len(flags), contrib)
	}
}
