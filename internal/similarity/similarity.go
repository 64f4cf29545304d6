// Package similarity detects resubmission evasion: a rejected ad posted
// again with cosmetic edits. It compares normalized ad text against the text
// of recently rejected ads using an edit-distance ratio.
package similarity

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultThreshold is the ratio at or above which two ads are considered
// the same listing.
const DefaultThreshold = 0.9

// Prior is one previously rejected ad to compare against.
type Prior struct {
	ID   string
	Text string
}

// Match reports the closest prior above the checker's threshold.
type Match struct {
	ID    string
	Ratio float64
}

// Checker computes text similarity ratios. It is stateless apart from its
// configuration and safe for concurrent use: DiffMatchPatch carries only
// tuning parameters.
type Checker struct {
	dmp       *diffmatchpatch.DiffMatchPatch
	threshold float64
}

// NewChecker builds a checker. threshold outside (0, 1] falls back to
// DefaultThreshold.
func NewChecker(threshold float64) *Checker {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Checker{dmp: diffmatchpatch.New(), threshold: threshold}
}

// Ratio returns a similarity ratio in [0, 1]: 1 for identical strings,
// 0 for entirely different ones. Defined as 1 - levenshtein/maxLen.
func (c *Checker) Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longer := len(ra)
	if len(rb) > longer {
		longer = len(rb)
	}
	if longer == 0 {
		return 1
	}
	diffs := c.dmp.DiffMain(a, b, false)
	lev := c.dmp.DiffLevenshtein(diffs)
	r := 1 - float64(lev)/float64(longer)
	if r < 0 {
		r = 0
	}
	return r
}

// BestMatch compares text against each prior and returns the highest-ratio
// prior at or above the threshold.
func (c *Checker) BestMatch(text string, priors []Prior) (Match, bool) {
	var best Match
	found := false
	for _, p := range priors {
		r := c.Ratio(text, p.Text)
		if r >= c.threshold && (!found || r > best.Ratio) {
			best = Match{ID: p.ID, Ratio: r}
			found = true
		}
	}
	return best, found
}
