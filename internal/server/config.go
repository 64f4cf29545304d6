package server

import (
	"github.com/tarekm/adsift/internal/logging"
	"github.com/tarekm/adsift/internal/moderation"
)

type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// RulesPath is an optional JSON rule table; empty means the builtin
	// ruleset.
	RulesPath string

	// DBPath is the SQLite file backing the decision log. Tests use
	// an in-memory DSN.
	DBPath string

	// ClassifierSeed seeds the stock-image sampler. Zero picks a
	// time-based seed (logged, so a run can still be replayed).
	ClassifierSeed int64

	// Classifier overrides the default sampler; used by tests.
	Classifier moderation.ImageClassifier

	// SimilarityThreshold for resubmission escalation; zero means default.
	SimilarityThreshold float64

	// RejectedLookback is how many recent rejections per category are
	// compared against a new submission; zero means default.
	RejectedLookback int

	Logger logging.Logger
}

// DefaultConfig returns a Config populated with sensible development defaults.
func DefaultConfig() Config {
	return Config{
		ListenAddr:       ":8080",
		DBPath:           "adsift.db",
		RejectedLookback: 50,
	}
}
