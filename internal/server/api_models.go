package server

import (
	"time"

	"github.com/tarekm/adsift/internal/moderation"
)

// ModerateRequest is the ad-submission payload scored by POST /moderate.
type ModerateRequest struct {
	Title                string   `json:"title" example:"Brand new car for sale"`
	TitleLocalized       string   `json:"title_localized" example:"سيارة جديدة للبيع"`
	Description          string   `json:"description" example:"Urgent sale no title no registration"`
	DescriptionLocalized string   `json:"description_localized"`
	Images               []string `json:"images"`
	Category             string   `json:"category" example:"vehicles"`
	Price                float64  `json:"price" example:"3000"`
}

func (r *ModerateRequest) submission() *moderation.Submission {
	return &moderation.Submission{
		Title:                r.Title,
		TitleLocalized:       r.TitleLocalized,
		Description:          r.Description,
		DescriptionLocalized: r.DescriptionLocalized,
		Images:               r.Images,
		Category:             moderation.Category(r.Category),
		Price:                r.Price,
	}
}

// ModerateResponse carries the scoring result plus the recorded decision id.
type ModerateResponse struct {
	DecisionID     string            `json:"decision_id"`
	Result         moderation.Result `json:"result"`
	Escalated      bool              `json:"escalated,omitempty"`
	ResubmissionOf string            `json:"resubmission_of,omitempty"`
}

// RulesSummaryResponse describes the loaded rule table without exposing the
// raw terms.
type RulesSummaryResponse struct {
	Version            string `json:"version" example:"builtin-v1"`
	ProhibitedTerms    int    `json:"prohibited_terms" example:"10"`
	SuspiciousPatterns int    `json:"suspicious_patterns" example:"9"`
	PriceBands         int    `json:"price_bands" example:"4"`
	CategoryRules      int    `json:"category_rules" example:"5"`
	ImageKeywords      int    `json:"image_keywords" example:"6"`
	StockProviders     int    `json:"stock_providers" example:"7"`
}

// DecisionEvent is one entry on the live websocket feed.
type DecisionEvent struct {
	DecisionID string    `json:"decision_id"`
	Category   string    `json:"category"`
	Score      float64   `json:"score"`
	Decision   string    `json:"decision"`
	Escalated  bool      `json:"escalated,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
