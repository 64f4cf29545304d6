package moderation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tarekm/adsift/internal/logging"
)

// Engine scores ad submissions against an immutable RuleSet. It holds no
// per-call state: every Moderate call is an independent computation, so one
// engine value may serve any number of concurrent callers, and multiple
// engines with different rule tables can coexist in one process.
type Engine struct {
	rules      *RuleSet
	classifier ImageClassifier
	logger     logging.Logger
}

// NewEngine constructs an engine around a compiled ruleset. The classifier
// is required so no unseeded randomness can hide in the scoring path; wire
// a StockSampler with an explicit seed in production and a fixed double in
// tests.
func NewEngine(rules *RuleSet, classifier ImageClassifier, logger logging.Logger) (*Engine, error) {
	if rules == nil {
		return nil, errors.New("moderation: nil ruleset")
	}
	if classifier == nil {
		return nil, errors.New("moderation: nil image classifier")
	}
	if logger == nil {
		return nil, errors.New("moderation: nil logger")
	}
	l := logger.With(logging.Field{Key: "component", Value: "moderation-engine"})
	l.Info("moderation engine constructed",
		logging.Field{Key: "rules_version", Value: rules.Version},
		logging.Field{Key: "prohibited_terms", Value: len(rules.ProhibitedTerms)},
		logging.Field{Key: "suspicious_patterns", Value: len(rules.SuspiciousPatterns)})
	return &Engine{rules: rules, classifier: classifier, logger: l}, nil
}

// Rules returns the engine's rule table (read-only).
func (e *Engine) Rules() *RuleSet { return e.rules }

// Moderate scores one submission. The five analyzers run independently over
// the same immutable input; their contributions are summed, clamped to
// [0, 1] and classified into a decision band. Scoring never fails: unknown
// categories skip category-conditional checks and empty fields contribute
// zero.
func (e *Engine) Moderate(ctx context.Context, sub *Submission) *Result {
	allText := CombinedText(
		sub.Title, sub.TitleLocalized, sub.Description, sub.DescriptionLocalized,
	)
	mainText := CombinedText(sub.Title, sub.Description)

	res := &Result{
		RulesVersion: e.rules.Version,
		Timestamp:    time.Now().UTC(),
	}
	var total float64

	// Analyzer order is fixed so flag order is stable: lexical, pattern,
	// price, image, category.
	flags, c := lexicalScan(e.rules, allText)
	res.Flags = append(res.Flags, flags...)
	total += c

	flags, c = patternScan(e.rules, allText)
	res.Flags = append(res.Flags, flags...)
	total += c

	flags, c = priceScan(e.rules, sub, mainText)
	res.Flags = append(res.Flags, flags...)
	total += c

	flags, c = imageScan(ctx, e.rules, e.classifier, e.logger, sub.Images)
	res.Flags = append(res.Flags, flags...)
	total += c

	flags, c = categoryScan(e.rules, sub, mainText)
	res.Flags = append(res.Flags, flags...)
	total += c

	res.Score = clamp01(total)
	decide(res)

	e.logger.Debug("submission scored",
		logging.Field{Key: "category", Value: string(sub.Category)},
		logging.Field{Key: "score", Value: res.Score},
		logging.Field{Key: "decision", Value: string(res.Decision)},
		logging.Field{Key: "flag_count", Value: len(res.Flags)})

	return res
}

// CombinedText lowercases and joins text fields, reducing rich-text markup
// to its visible text first. The server pipeline uses the same reduction
// when comparing a submission against previously rejected ads.
func CombinedText(fields ...string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" {
			continue
		}
		parts = append(parts, stripMarkup(f))
	}
	return strings.ToLower(strings.Join(parts, " "))
}
