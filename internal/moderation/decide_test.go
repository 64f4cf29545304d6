package moderation

import (
	"strings"
	"testing"
)

func TestDecide_BandBoundaries(t *testing.T) {
	cases := []struct {
		score          float64
		decision       Decision
		requiresReview bool
		monitored      bool
	}{
		{1.0, DecisionRejected, false, false},
		{0.8, DecisionRejected, false, false},
		{0.79999, DecisionManualReview, true, false},
		{0.4, DecisionManualReview, true, false},
		{0.39999, DecisionApproved, false, true},
		{0.2, DecisionApproved, false, true},
		{0.19999, DecisionApproved, false, false},
		{0, DecisionApproved, false, false},
	}
	for _, tc := range cases {
		res := &Result{Score: tc.score}
		decide(res)
		if res.Decision != tc.decision {
			t.Errorf("score %v: decision = %s, want %s", tc.score, res.Decision, tc.decision)
		}
		if res.RequiresReview != tc.requiresReview {
			t.Errorf("score %v: requiresReview = %v, want %v", tc.score, res.RequiresReview, tc.requiresReview)
		}
		if res.Monitored != tc.monitored {
			t.Errorf("score %v: monitored = %v, want %v", tc.score, res.Monitored, tc.monitored)
		}
	}
}

func TestDecide_RejectionReasonOnlyWhenRejected(t *testing.T) {
	res := &Result{Score: 0.5, Flags: []Flag{{Kind: KindLexical, Detail: "x"}}}
	decide(res)
	if res.RejectionReason != "" {
		t.Errorf("manual review must carry no rejection reason, got %q", res.RejectionReason)
	}
}

func TestRejectionReason_SynthesizedFromKinds(t *testing.T) {
	res := &Result{
		Score: 0.9,
		Flags: []Flag{
			{Kind: KindLexical, Detail: "term"},
			{Kind: KindPattern, Detail: "pattern"},
			{Kind: KindPrice, Detail: "price"},
			{Kind: KindImage, Detail: "image"},
		},
	}
	decide(res)
	reason := res.RejectionReason
	for _, want := range []string{
		"inappropriate language",
		"potentially harmful content",
		"inappropriate images",
		"suspicious pricing",
	} {
		if !strings.Contains(reason, want) {
			t.Errorf("reason %q missing %q", reason, want)
		}
	}
}

func TestRejectionReason_GenericFallback(t *testing.T) {
	// Category flags have no reason mapping of their own; the generic
	// guideline message covers them.
	res := &Result{Score: 0.9, Flags: []Flag{{Kind: KindCategory, Detail: "x"}}}
	decide(res)
	if !strings.Contains(res.RejectionReason, "guidelines") {
		t.Errorf("expected the generic guideline message, got %q", res.RejectionReason)
	}
}

func TestClamp01(t *testing.T) {
	if got := clamp01(2.1); got != 1 {
		t.Errorf("clamp01(2.1) = %v, want 1", got)
	}
	if got := clamp01(-0.3); got != 0 {
		t.Errorf("clamp01(-0.3) = %v, want 0", got)
	}
	if got := clamp01(0.55); got != 0.55 {
		t.Errorf("clamp01(0.55) = %v, want 0.55", got)
	}
}
