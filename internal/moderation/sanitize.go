package moderation

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripMarkup reduces a rich-text field to its visible text so markup cannot
// split or hide a prohibited term ("es<b>cort</b>"). Plain text passes
// through untouched; unparseable input falls back to the original string.
func stripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}
