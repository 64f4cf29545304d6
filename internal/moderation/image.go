package moderation

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/idna"

	"github.com/tarekm/adsift/internal/logging"
)

// imageScan applies two independent checks to each image reference: a
// keyword check on the reference text, and the classifier for references
// that point at a known stock-photo provider. Each firing check contributes
// the image weight once. An empty image list contributes nothing.
func imageScan(ctx context.Context, rules *RuleSet, classifier ImageClassifier, logger logging.Logger, images []string) ([]Flag, float64) {
	var flags []Flag
	var contribution float64

	for _, ref := range images {
		lower := strings.ToLower(strings.TrimSpace(ref))

		for _, kw := range rules.ImageKeywords {
			if strings.Contains(lower, kw) {
				flags = append(flags, Flag{
					Kind:   KindImage,
					Detail: fmt.Sprintf("image reference %q contains inappropriate keyword", ref),
				})
				contribution += imageWeight
				break
			}
		}

		if !isStockProvider(rules, foldHost(lower)) {
			continue
		}
		flagged, err := classifier.Flagged(ctx, ref)
		if err != nil {
			// Degrade to "no flag": moderation must never block submission
			// because a classification backend is down.
			if logger != nil {
				logger.Warn("image classifier failed, skipping reference",
					logging.Field{Key: "ref", Value: ref},
					logging.Field{Key: "error", Value: err.Error()})
			}
			continue
		}
		if flagged {
			flags = append(flags, Flag{
				Kind:   KindImage,
				Detail: fmt.Sprintf("image reference %q flagged by content classifier", ref),
			})
			contribution += imageWeight
		}
	}

	return flags, contribution
}

// foldHost rewrites an internationalized host into its ASCII form so unicode
// look-alike hosts cannot dodge the provider list. Opaque references pass
// through unchanged.
func foldHost(ref string) string {
	u, err := url.Parse(ref)
	if err != nil || u.Hostname() == "" {
		return ref
	}
	ascii, err := idna.Lookup.ToASCII(u.Hostname())
	if err != nil {
		return ref
	}
	return strings.Replace(ref, u.Hostname(), ascii, 1)
}

func isStockProvider(rules *RuleSet, ref string) bool {
	for _, provider := range rules.StockProviders {
		if strings.Contains(ref, provider) {
			return true
		}
	}
	return false
}
