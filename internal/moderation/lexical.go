package moderation

import (
	"fmt"
	"strings"
)

// lexicalScan returns the prohibited terms found as substrings of the
// combined lowercased ad text, in ruleset declaration order. Substring
// containment is intentional: the curated terms are phrase-heavy and the
// watch band absorbs the occasional hit inside a longer word.
func lexicalScan(rules *RuleSet, text string) ([]Flag, float64) {
	var flags []Flag
	var contribution float64
	for _, term := range rules.ProhibitedTerms {
		if strings.Contains(text, term) {
			flags = append(flags, Flag{
				Kind:   KindLexical,
				Detail: fmt.Sprintf("contains prohibited term %q", term),
			})
			contribution += lexicalWeight
		}
	}
	return flags, contribution
}
