package moderation

import (
	"context"
	"math/rand"
	"sync"
)

// ImageClassifier is the capability boundary for content classification of a
// single image reference. Implementations may call out to a real vision API;
// the engine treats a classifier error as "no flag" so moderation never
// blocks ad submission.
type ImageClassifier interface {
	// Flagged reports whether the referenced image should be flagged as
	// inappropriate.
	Flagged(ctx context.Context, ref string) (bool, error)
}

// StockSampler is the stand-in classifier for stock-provider images: a
// Bernoulli trial with fixed probability per reference. The rand source is
// injected through the seed so runs are reproducible.
type StockSampler struct {
	p  float64
	mu sync.Mutex
	r  *rand.Rand
}

// DefaultFlagProbability is the sampler's flag rate when none is configured.
const DefaultFlagProbability = 0.05

// NewStockSampler builds a sampler flagging with probability p, driven by a
// deterministic source seeded with seed.
func NewStockSampler(p float64, seed int64) *StockSampler {
	return &StockSampler{p: p, r: rand.New(rand.NewSource(seed))}
}

func (s *StockSampler) Flagged(_ context.Context, _ string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64() < s.p, nil
}
