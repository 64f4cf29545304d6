package moderation

import (
	"fmt"
	"strings"
)

// priceScan flags pricing that is implausible for the category or
// contextually suspicious. Categories without a configured band are exempt
// from the band check but still subject to the contextual heuristics, and a
// single submission can raise several price flags at once.
func priceScan(rules *RuleSet, sub *Submission, text string) ([]Flag, float64) {
	var flags []Flag
	var contribution float64

	if band, ok := rules.CategoryPriceBands[sub.Category]; ok {
		if sub.Price < band.Min || sub.Price > band.Max {
			flags = append(flags, Flag{
				Kind: KindPrice,
				Detail: fmt.Sprintf("price %.2f outside expected range [%.2f, %.2f] for category %s",
					sub.Price, band.Min, band.Max, sub.Category),
			})
			contribution += priceWeight
		}
	}

	if strings.Contains(text, "urgent sale") && sub.Price < 100 {
		flags = append(flags, Flag{
			Kind:   KindPrice,
			Detail: "potential scam: urgent low-price sale",
		})
		contribution += priceWeight
	}

	if strings.Contains(text, "brand new") && sub.Category == CategoryVehicles && sub.Price < 5000 {
		flags = append(flags, Flag{
			Kind:   KindPrice,
			Detail: "brand-new vehicle priced suspiciously low",
		})
		contribution += priceWeight
	}

	return flags, contribution
}
