package classify

import (
	"strings"
)

type Category string

const (
	CategoryPad       Category = "pad"
	CategoryUnderwear Category = "underwear"
	CategoryGeneral   Category = "general"
)

// brandRule maps a lowercase keyword to the brand and company it implies.
// Brand and Company are nil for keywords that only confirm topicality.
type brandRule struct {
	Keyword string
	Brand   *string
	Company *string
}

func rule(keyword, brand, company string) brandRule {
	r := brandRule{Keyword: keyword}
	if brand != "" {
		r.Brand = &brand
	}
	if company != "" {
		r.Company = &company
	}
	return r
}

// brandRules is scanned top to bottom; the first keyword contained in the
// text wins. Kept as a slice so the priority order is explicit and stable.
var brandRules = []brandRule{
	rule("laurier", "ロリエ", "花王"),
	rule("ロリエ", "ロリエ", "花王"),
	rule("sofy", "ソフィ", "ユニ・チャーム"),
	rule("ソフィ", "ソフィ", "ユニ・チャーム"),
	rule("always", "Always", "P&G"),
	rule("whisper", "Whisper", "P&G"),
	rule("thinx", "Thinx", "Thinx Inc."),
	rule("modibodi", "Modibodi", "Modibodi"),
	rule("kotex", "Kotex", "Kimberly-Clark"),
	rule("stayfree", "Stayfree", "Johnson & Johnson"),
	rule("nana", "Nana", "Essity"),
	rule("bodyform", "Bodyform", "Essity"),
	rule("libresse", "Libresse", "Essity"),
	rule("elis", "エリス", "大王製紙"),
	rule("エリス", "エリス", "大王製紙"),
	rule("center-in", "センターイン", "ユニ・チャーム"),
	rule("センターイン", "センターイン", "ユニ・チャーム"),
	rule("be-a", "Bé-A", "Bé-A Japan"),
	rule("nagi", "Nagi", "BLAST Inc."),
	rule("period", "", ""),
}

var underwearKeywords = []string{"underwear", "panties", "ショーツ", "shorts"}

var padKeywords = []string{"pad", "napkin", "ナプキン", "パッド"}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Run detects brand and company from free text. Matching is
// case-insensitive substring containment; the first matching rule wins.
func (c *Classifier) Run(text string) (brand *string, company *string) {
	lower := strings.ToLower(text)
	for _, r := range brandRules {
		if strings.Contains(lower, r.Keyword) {
			return r.Brand, r.Company
		}
	}
	return nil, nil
}

// Category detects the product category. Underwear keywords take
// precedence over pad keywords; unmatched text is CategoryGeneral.
func (c *Classifier) Category(text string) Category {
	lower := strings.ToLower(text)
	for _, kw := range underwearKeywords {
		if strings.Contains(lower, kw) {
			return CategoryUnderwear
		}
	}
	for _, kw := range padKeywords {
		if strings.Contains(lower, kw) {
			return CategoryPad
		}
	}
	return CategoryGeneral
}

// ScrapedCategory applies the category heuristic for items from curated
// brand pages: those are assumed on-topic, so the fallback is pad rather
// than general.
func (c *Classifier) ScrapedCategory(text string) Category {
	lower := strings.ToLower(text)
	for _, kw := range underwearKeywords {
		if strings.Contains(lower, kw) {
			return CategoryUnderwear
		}
	}
	return CategoryPad
}
