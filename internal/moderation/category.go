package moderation

import "strings"

// categoryScan applies the category's registered red-flag rules to the
// combined ad text. A rule fires when every one of its groups has at least
// one alternative present. Categories with no registered rules simply
// produce no flags.
func categoryScan(rules *RuleSet, sub *Submission, text string) ([]Flag, float64) {
	var flags []Flag
	var contribution float64
	for _, rule := range rules.CategoryRules[sub.Category] {
		if categoryRuleFires(rule, text) {
			flags = append(flags, Flag{Kind: KindCategory, Detail: rule.Flag})
			contribution += categoryWeight
		}
	}
	return flags, contribution
}

func categoryRuleFires(rule CategoryRule, text string) bool {
	for _, group := range rule.AllOf {
		found := false
		for _, term := range group {
			if strings.Contains(text, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
