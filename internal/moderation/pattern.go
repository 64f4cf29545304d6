package moderation

import "fmt"

// patternScan tests the combined ad text against every suspicious pattern.
// A pattern matching multiple times still contributes exactly once.
func patternScan(rules *RuleSet, text string) ([]Flag, float64) {
	var flags []Flag
	var contribution float64
	for i := range rules.SuspiciousPatterns {
		p := &rules.SuspiciousPatterns[i]
		if p.re.MatchString(text) {
			flags = append(flags, Flag{
				Kind:   KindPattern,
				Detail: fmt.Sprintf("suspicious pattern %d", i),
			})
			contribution += p.Weight
		}
	}
	return flags, contribution
}
