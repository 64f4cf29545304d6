package moderation

import (
	"context"
	"math"
	"testing"

	"github.com/tarekm/adsift/internal/testutil"
)

func TestImageScan_EmptyList(t *testing.T) {
	rules := testRules(t)
	classifier := &testutil.FixedClassifier{}
	flags, contrib := imageScan(context.Background(), rules, classifier, nil, nil)
	if len(flags) != 0 || contrib != 0 {
		t.Fatalf("expected nothing for empty images, got %d flags, %v", len(flags), contrib)
	}
}

func TestImageScan_KeywordCheck(t *testing.T) {
	rules := testRules(t)
	classifier := &testutil.FixedClassifier{}
	images := []string{
		"https://img.example.com/sofa-1.jpg",
		"https://img.example.com/xxx-preview.jpg",
	}
	flags, contrib := imageScan(context.Background(), rules, classifier, nil, images)
	if len(flags) != 1 {
		t.Fatalf("expected 1 flag, got %d: %v", len(flags), flags)
	}
	if flags[0].Kind != KindImage {
		t.Errorf("kind = %s, want image", flags[0].Kind)
	}
	if math.Abs(contrib-imageWeight) > 1e-9 {
		t.Errorf("contribution = %v, want %v", contrib, imageWeight)
	}
	if classifier.CallCount() != 0 {
		t.Errorf("non-stock references must not hit the classifier, got %d calls", classifier.CallCount())
	}
}

func TestImageScan_StockProviderUsesClassifier(t *testing.T) {
	rules := testRules(t)
	ref := "https://www.shutterstock.com/image-photo/sedan-123.jpg"
	classifier := &testutil.FixedClassifier{FlagRefs: map[string]bool{ref: true}}
	flags, contrib := imageScan(context.Background(), rules, classifier, nil, []string{ref})
	if len(flags) != 1 {
		t.Fatalf("expected 1 flag, got %d", len(flags))
	}
	if math.Abs(contrib-imageWeight) > 1e-9 {
		t.Errorf("contribution = %v, want %v", contrib, imageWeight)
	}

	// Not flagged by the classifier: nothing fires.
	classifier = &testutil.FixedClassifier{}
	flags, contrib = imageScan(context.Background(), rules, classifier, nil, []string{ref})
	if len(flags) != 0 || contrib != 0 {
		t.Fatalf("expected nothing, got %d flags, %v", len(flags), contrib)
	}
	if classifier.CallCount() != 1 {
		t.Errorf("classifier calls = %d, want 1", classifier.CallCount())
	}
}

func TestImageScan_ClassifierErrorDegrades(t *testing.T) {
	rules := testRules(t)
	ref := "https://gettyimages.com/photo/1.jpg"
	classifier := &testutil.FixedClassifier{FailRefs: map[string]bool{ref: true}}
	logger := &testutil.DummyLogger{}
	flags, contrib := imageScan(context.Background(), rules, classifier, logger, []string{ref})
	if len(flags) != 0 || contrib != 0 {
		t.Fatalf("classifier failure must degrade to no flag, got %d flags", len(flags))
	}
	if logger.WarnCount() == 0 {
		t.Error("degradation should be logged")
	}
}

func TestImageScan_BothChecksIndependent(t *testing.T) {
	rules := testRules(t)
	// Reference hits the keyword list and comes from a stock provider the
	// classifier flags: two independent flags.
	ref := "https://istockphoto.com/adult-content.jpg"
	classifier := &testutil.FixedClassifier{FlagRefs: map[string]bool{ref: true}}
	flags, contrib := imageScan(context.Background(), rules, classifier, nil, []string{ref})
	if len(flags) != 2 {
		t.Fatalf("expected 2 flags, got %d: %v", len(flags), flags)
	}
	if math.Abs(contrib-2*imageWeight) > 1e-9 {
		t.Errorf("contribution = %v, want %v", contrib, 2*imageWeight)
	}
}

func TestFoldHost_UnicodeLookalike(t *testing.T) {
	// A unicode host folding to the punycode form should not silently be
	// treated as the ASCII provider string, and folding must not error out.
	folded := foldHost("https://shutterstoсk.com/photo.jpg") // Cyrillic 'с'
	if folded == "" {
		t.Fatal("empty fold result")
	}
	// Opaque ids pass through unchanged.
	if got := foldHost("upload-123"); got != "upload-123" {
		t.Errorf("opaque ref changed: %q", got)
	}
}

func TestStockSampler_Deterministic(t *testing.T) {
	a := NewStockSampler(0.5, 42)
	b := NewStockSampler(0.5, 42)
	for i := 0; i < 20; i++ {
		fa, _ := a.Flagged(context.Background(), "x")
		fb, _ := b.Flagged(context.Background(), "x")
		if fa != fb {
			t.Fatalf("samplers with equal seeds diverged at draw %d", i)
		}
	}
}
