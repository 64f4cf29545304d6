package moderation

import "strings"

// Score contributions per firing rule. lexicalWeight and friends are flat
// additive contributions; the final score is clamped to [0, 1].
const (
	lexicalWeight  = 0.3
	patternWeight  = 0.2
	priceWeight    = 0.1
	imageWeight    = 0.2
	categoryWeight = 0.15
)

// Decision band thresholds, evaluated high to low; first match wins.
const (
	rejectThreshold  = 0.8
	reviewThreshold  = 0.4
	monitorThreshold = 0.2
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// decide fills Decision, RequiresReview, Monitored and RejectionReason from
// an already-clamped score. The mapping is a strict function of the score.
func decide(res *Result) {
	switch {
	case res.Score >= rejectThreshold:
		res.Decision = DecisionRejected
		res.RejectionReason = rejectionReason(res)
	case res.Score >= reviewThreshold:
		res.Decision = DecisionManualReview
		res.RequiresReview = true
	case res.Score >= monitorThreshold:
		// Approved, but flags stay attached for downstream audit.
		res.Decision = DecisionApproved
		res.Monitored = true
	default:
		res.Decision = DecisionApproved
	}
}

// rejectionReason synthesizes one sentence from flag kind membership. It
// deliberately never inspects flag text, so rewording a flag cannot change
// how a rejection is explained.
func rejectionReason(res *Result) string {
	kinds := res.kinds()

	var reasons []string
	if kinds[KindLexical] {
		reasons = append(reasons, "inappropriate language")
	}
	if kinds[KindPattern] {
		reasons = append(reasons, "potentially harmful content")
	}
	if kinds[KindImage] {
		reasons = append(reasons, "inappropriate images")
	}
	if kinds[KindPrice] {
		reasons = append(reasons, "suspicious pricing")
	}
	if len(reasons) == 0 {
		return "Ad rejected: content violates marketplace guidelines."
	}
	return "Ad rejected due to: " + strings.Join(reasons, ", ") + "."
}
