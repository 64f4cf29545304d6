package moderation

import "time"

// Category is the fixed set of listing categories known to the marketplace.
// The engine treats unknown categories as having no category-specific rules.
type Category string

const (
	CategoryVehicles    Category = "vehicles"
	CategoryRealEstate  Category = "real-estate"
	CategoryJobs        Category = "jobs"
	CategoryServices    Category = "services"
	CategoryElectronics Category = "electronics"
	CategoryFurniture   Category = "furniture"
	CategoryOther       Category = "other"
)

// Submission is one ad as handed over by the posting flow. It is treated as
// immutable for the duration of scoring. Input validation is the caller's
// responsibility; missing fields behave as empty strings / zero price.
type Submission struct {
	// Title and Description are the primary-language text fields.
	Title       string `json:"title"`
	Description string `json:"description"`

	// TitleLocalized and DescriptionLocalized are the second-language variants.
	TitleLocalized       string `json:"title_localized"`
	DescriptionLocalized string `json:"description_localized"`

	// Images holds ordered image references (URLs or opaque identifiers).
	Images []string `json:"images"`

	Category Category `json:"category"`

	// Price is the asking price; non-negative.
	Price float64 `json:"price"`
}

// Decision is the terminal outcome of scoring a submission.
type Decision string

const (
	DecisionApproved     Decision = "approved"
	DecisionManualReview Decision = "manual_review"
	DecisionRejected     Decision = "rejected"
)

// FlagKind identifies which analyzer raised a flag. Rejection-reason
// synthesis operates on this enum, never on flag text.
type FlagKind string

const (
	KindLexical  FlagKind = "lexical"
	KindPattern  FlagKind = "pattern"
	KindPrice    FlagKind = "price"
	KindImage    FlagKind = "image"
	KindCategory FlagKind = "category"
)

// Flag is one triggered rule: the analyzer that raised it plus a
// human-readable detail string.
type Flag struct {
	Kind   FlagKind `json:"kind"`
	Detail string   `json:"detail"`
}

// Result is the canonical engine output for a single submission.
type Result struct {
	// Score is the clamped risk score in [0.0 .. 1.0].
	Score float64 `json:"score"`

	// Flags holds one entry per triggered rule, in analyzer order
	// (lexical, pattern, price, image, category).
	Flags []Flag `json:"flags,omitempty"`

	Decision Decision `json:"decision"`

	// RequiresReview is set for the manual-review band.
	RequiresReview bool `json:"requires_review"`

	// Monitored marks an approved submission whose flags are kept attached
	// for downstream audit (score in the watch band).
	Monitored bool `json:"monitored"`

	// RejectionReason is present only when Decision is rejected. It is a
	// synthesized sentence derived from flag kind membership, not from the
	// raw flag list.
	RejectionReason string `json:"rejection_reason,omitempty"`

	// RulesVersion identifies the ruleset that produced this result.
	RulesVersion string `json:"rules_version,omitempty"`

	// Timestamp is when the result was produced.
	Timestamp time.Time `json:"timestamp"`
}

// kinds reports which flag kinds are present in the result.
func (r *Result) kinds() map[FlagKind]bool {
	m := make(map[FlagKind]bool, len(r.Flags))
	for _, f := range r.Flags {
		m[f.Kind] = true
	}
	return m
}
