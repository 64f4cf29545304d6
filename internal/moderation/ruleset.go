package moderation

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// PriceBand is the plausible asking-price range for a category. Categories
// without a band are exempt from the band check.
type PriceBand struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// PatternRule is one suspicious-phrase regex with its score weight.
// Weight falls back to the standard pattern contribution when omitted.
type PatternRule struct {
	Expr   string  `json:"expr"`
	Weight float64 `json:"weight,omitempty"`

	re *regexp.Regexp
}

// CategoryRule is a declarative category red-flag: every group in AllOf must
// have at least one of its alternatives present in the combined ad text.
type CategoryRule struct {
	Flag  string     `json:"flag"`
	AllOf [][]string `json:"all_of"`
}

// RuleSet is the process-wide moderation rule table. It is loaded once at
// startup, validated with Compile, and never mutated afterwards, so it is
// safe for unrestricted concurrent reads.
type RuleSet struct {
	// Version identifies this rule table for auditability.
	Version string `json:"version"`

	// ProhibitedTerms are matched case-insensitively as substrings over the
	// concatenated text fields, in declaration order.
	ProhibitedTerms []string `json:"prohibited_terms"`

	// SuspiciousPatterns are evaluated independently; each contributes once
	// no matter how often it matches.
	SuspiciousPatterns []PatternRule `json:"suspicious_patterns"`

	// CategoryPriceBands maps a category to its plausible price range.
	CategoryPriceBands map[Category]PriceBand `json:"category_price_bands"`

	// CategoryRules maps a category to its red-flag rules.
	CategoryRules map[Category][]CategoryRule `json:"category_rules"`

	// ImageKeywords flag an image reference that textually contains one.
	ImageKeywords []string `json:"image_keywords"`

	// StockProviders are host fragments identifying stock-photo providers;
	// matching references are handed to the image classifier.
	StockProviders []string `json:"stock_providers"`
}

// LoadRuleSet reads a JSON rule table from path and compiles it.
// A ruleset that fails to compile is unusable and the process must not
// start with it.
func LoadRuleSet(path string) (*RuleSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ruleset %s: %w", path, err)
	}
	var rs RuleSet
	if err := json.Unmarshal(raw, &rs); err != nil {
		return nil, fmt.Errorf("parsing ruleset %s: %w", path, err)
	}
	if err := rs.Compile(); err != nil {
		return nil, fmt.Errorf("ruleset %s: %w", path, err)
	}
	return &rs, nil
}

// Compile validates the ruleset and precompiles its regexes. All patterns are
// forced case-insensitive. Compile must be called before the ruleset is used.
func (rs *RuleSet) Compile() error {
	if rs.Version == "" {
		rs.Version = "unversioned"
	}
	for i, t := range rs.ProhibitedTerms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return fmt.Errorf("prohibited term %d is empty", i)
		}
		rs.ProhibitedTerms[i] = t
	}
	for i := range rs.SuspiciousPatterns {
		p := &rs.SuspiciousPatterns[i]
		if strings.TrimSpace(p.Expr) == "" {
			return fmt.Errorf("suspicious pattern %d is empty", i)
		}
		expr := p.Expr
		if !strings.HasPrefix(expr, "(?i)") {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return fmt.Errorf("suspicious pattern %d (%q): %w", i, p.Expr, err)
		}
		p.re = re
		if p.Weight < 0 {
			return fmt.Errorf("suspicious pattern %d has negative weight", i)
		}
		if p.Weight == 0 {
			p.Weight = patternWeight
		}
	}
	for cat, band := range rs.CategoryPriceBands {
		if band.Min < 0 || band.Max < band.Min {
			return fmt.Errorf("price band for %q is invalid (min=%v max=%v)", cat, band.Min, band.Max)
		}
	}
	for cat, rules := range rs.CategoryRules {
		for i, r := range rules {
			if strings.TrimSpace(r.Flag) == "" {
				return fmt.Errorf("category rule %d for %q has no flag text", i, cat)
			}
			if len(r.AllOf) == 0 {
				return fmt.Errorf("category rule %d for %q has no term groups", i, cat)
			}
			for gi, group := range r.AllOf {
				if len(group) == 0 {
					return fmt.Errorf("category rule %d for %q: group %d is empty", i, cat, gi)
				}
				for ti, term := range group {
					term = strings.ToLower(strings.TrimSpace(term))
					if term == "" {
						return fmt.Errorf("category rule %d for %q: empty term in group %d", i, cat, gi)
					}
					rs.CategoryRules[cat][i].AllOf[gi][ti] = term
				}
			}
		}
	}
	for i, kw := range rs.ImageKeywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			return fmt.Errorf("image keyword %d is empty", i)
		}
		rs.ImageKeywords[i] = kw
	}
	for i, h := range rs.StockProviders {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			return fmt.Errorf("stock provider %d is empty", i)
		}
		rs.StockProviders[i] = h
	}
	return nil
}

// DefaultRuleSet returns the built-in rule table. It is the fallback when no
// external rules file is configured and the fixture for most tests.
func DefaultRuleSet() *RuleSet {
	rs := &RuleSet{
		Version: "builtin-v1",
		ProhibitedTerms: []string{
			"escort",
			"narcotics",
			"counterfeit",
			"stolen goods",
			"fake id",
			"unlicensed firearm",
			"prescription-free",
			"pirated",
			"human trafficking",
			"endangered species",
		},
		SuspiciousPatterns: []PatternRule{
			{Expr: `\b(cocaine|heroin|meth|mdma|ecstasy|cannabis)\b`},
			{Expr: `\b(glock|ak-?47|pistol|firearm|ammunition|silencer)\b`},
			{Expr: `(western union|moneygram|wire transfer).{0,40}(only|upfront|advance)`},
			{Expr: `money.?back guarantee`},
			{Expr: `work from home`},
			{Expr: `act (now|fast|today) or`},
			{Expr: `limited time (offer|only)`},
			{Expr: `100% (legit|genuine|guaranteed)`},
			{Expr: `\b(beat|hurt|kill)\b.{0,20}\b(him|her|them|someone)\b`},
		},
		CategoryPriceBands: map[Category]PriceBand{
			CategoryVehicles:    {Min: 500, Max: 200000},
			CategoryRealEstate:  {Min: 10000, Max: 5000000},
			CategoryElectronics: {Min: 10, Max: 20000},
			CategoryFurniture:   {Min: 5, Max: 15000},
		},
		CategoryRules: map[Category][]CategoryRule{
			CategoryVehicles: {
				{
					Flag:  "vehicle listing omits legal documentation",
					AllOf: [][]string{{"no title", "no papers", "no registration", "without documents"}},
				},
			},
			CategoryRealEstate: {
				{
					Flag:  "possible rental scam (cash only, urgent)",
					AllOf: [][]string{{"cash only"}, {"urgent"}},
				},
			},
			CategoryJobs: {
				{
					Flag:  "unrealistic job offer (no experience, high pay)",
					AllOf: [][]string{{"no experience"}, {"high pay", "high salary", "earn big"}},
				},
				{
					Flag:  "guaranteed-income work-from-home offer",
					AllOf: [][]string{{"work from home"}, {"guaranteed income", "guaranteed pay", "guaranteed earnings"}},
				},
			},
			CategoryServices: {
				{
					Flag:  "suggestive massage service wording",
					AllOf: [][]string{{"massage"}, {"private", "discreet"}},
				},
			},
		},
		ImageKeywords: []string{
			"nude", "nsfw", "xxx", "adult", "explicit", "porn",
		},
		StockProviders: []string{
			"shutterstock", "gettyimages", "istockphoto", "stock.adobe",
			"dreamstime", "depositphotos", "stockphoto",
		},
	}
	if err := rs.Compile(); err != nil {
		// The builtin table is part of the binary; failing to compile it is
		// a programming error, not a runtime condition.
		panic(fmt.Sprintf("builtin ruleset invalid: %v", err))
	}
	return rs
}
