package moderation

import (
	"math"
	"testing"
)

func TestPatternScan_OneContributionPerPattern(t *testing.T) {
	rules := &RuleSet{
		Version: "test",
		SuspiciousPatterns: []PatternRule{
			{Expr: `work from home`},
			{Expr: `limited time (offer|only)`},
		},
	}
	if err := rules.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}

	// The first pattern matches twice; it still contributes once.
	text := "work from home! yes, work from home today"
	flags, contrib := patternScan(rules, text)
	if len(flags) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(flags))
	}
	if flags[0].Kind != KindPattern {
		t.Errorf("kind = %s, want pattern", flags[0].Kind)
	}
	if flags[0].Detail != "suspicious pattern 0" {
		t.Errorf("detail = %q, want %q", flags[0].Detail, "suspicious pattern 0")
	}
	if math.Abs(contrib-patternWeight) > 1e-9 {
		t.Errorf("contribution = %v, want %v", contrib, patternWeight)
	}
}

func TestPatternScan_CaseInsensitive(t *testing.T) {
	rules := &RuleSet{
		Version:            "test",
		SuspiciousPatterns: []PatternRule{{Expr: `money.?back guarantee`}},
	}
	if err := rules.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	flags, _ := patternScan(rules, "MONEY-BACK GUARANTEE on all items")
	if len(flags) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(flags))
	}
}

func TestPatternScan_CustomWeight(t *testing.T) {
	rules := &RuleSet{
		Version: "test",
		SuspiciousPatterns: []PatternRule{
			{Expr: `wire transfer only`, Weight: 0.4},
		},
	}
	if err := rules.Compile(); err != nil {
		t.Fatalf("compile: %v", err)
	}
	_, contrib := patternScan(rules, "payment by wire transfer only")
	if math.Abs(contrib-0.4) > 1e-9 {
		t.Errorf("contribution = %v, want 0.4", contrib)
	}
}

func TestPatternScan_IndependentPatterns(t *testing.T) {
	rules := testRules(t)
	text := "work from home with a money-back guarantee"
	flags, contrib := patternScan(rules, text)
	if len(flags) != 2 {
		t.Fatalf("expected 2 flags, got %d: %v", len(flags), flags)
	}
	if math.Abs(contrib-2*patternWeight) > 1e-9 {
		t.Errorf("contribution = %v, want %v", contrib, 2*patternWeight)
	}
}
