package classify

import (
	"testing"
)

func TestClassifier_Run_KnownBrand(t *testing.T) {
	classifier := NewClassifier()

	brand, company := classifier.Run("Kao expands its Laurier lineup in Asia")

	if brand == nil || *brand != "ロリエ" {
		t.Errorf("Expected brand ロリエ, got %v", brand)
	}
	if company == nil || *company != "花王" {
		t.Errorf("Expected company 花王, got %v", company)
	}
}

func TestClassifier_Run_CaseInsensitive(t *testing.T) {
	classifier := NewClassifier()

	brand, _ := classifier.Run("THINX announces new product line")

	if brand == nil || *brand != "Thinx" {
		t.Errorf("Expected brand Thinx, got %v", brand)
	}
}

func TestClassifier_Run_JapaneseKeyword(t *testing.T) {
	classifier := NewClassifier()

	brand, company := classifier.Run("ソフィの新商品が発売")

	if brand == nil || *brand != "ソフィ" {
		t.Errorf("Expected brand ソフィ, got %v", brand)
	}
	if company == nil || *company != "ユニ・チャーム" {
		t.Errorf("Expected company ユニ・チャーム, got %v", company)
	}
}

func TestClassifier_Run_PriorityOrder(t *testing.T) {
	classifier := NewClassifier()

	// Both ロリエ and ソフィ appear; the rule list puts ロリエ first.
	brand, _ := classifier.Run("ソフィとロリエの比較記事")

	if brand == nil || *brand != "ロリエ" {
		t.Errorf("Expected first-listed brand ロリエ to win, got %v", brand)
	}
}

func TestClassifier_Run_PeriodKeywordYieldsNoBrand(t *testing.T) {
	classifier := NewClassifier()

	// "period" matches a rule but carries no brand or company.
	brand, company := classifier.Run("period products are in the news")

	if brand != nil {
		t.Errorf("Expected nil brand, got %v", *brand)
	}
	if company != nil {
		t.Errorf("Expected nil company, got %v", *company)
	}
}

func TestClassifier_Run_NoMatch(t *testing.T) {
	classifier := NewClassifier()

	brand, company := classifier.Run("completely unrelated cooking article")

	if brand != nil || company != nil {
		t.Errorf("Expected nil brand and company, got %v / %v", brand, company)
	}
}

func TestClassifier_Run_Deterministic(t *testing.T) {
	classifier := NewClassifier()
	text := "Sofy and Laurier and Thinx all mentioned here"

	firstBrand, firstCompany := classifier.Run(text)
	for i := 0; i < 50; i++ {
		brand, company := classifier.Run(text)
		if (brand == nil) != (firstBrand == nil) || (brand != nil && *brand != *firstBrand) {
			t.Fatalf("Run is not deterministic: iteration %d returned brand %v", i, brand)
		}
		if (company == nil) != (firstCompany == nil) || (company != nil && *company != *firstCompany) {
			t.Fatalf("Run is not deterministic: iteration %d returned company %v", i, company)
		}
	}
}

func TestClassifier_Category(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name     string
		text     string
		expected Category
	}{
		{"underwear english", "new period underwear launched", CategoryUnderwear},
		{"underwear japanese", "吸水ショーツの新作", CategoryUnderwear},
		{"pad english", "sanitary pad market grows", CategoryPad},
		{"pad japanese", "ナプキンの売上が増加", CategoryPad},
		{"underwear beats pad", "pad and underwear compared", CategoryUnderwear},
		{"no match", "menstrual health awareness week", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifier.Category(tt.text); got != tt.expected {
				t.Errorf("Category(%q) = %s, expected %s", tt.text, got, tt.expected)
			}
		})
	}
}

func TestClassifier_ScrapedCategory_DefaultsToPad(t *testing.T) {
	classifier := NewClassifier()

	if got := classifier.ScrapedCategory("春の新商品のお知らせ"); got != CategoryPad {
		t.Errorf("Expected pad fallback for scraped items, got %s", got)
	}
	if got := classifier.ScrapedCategory("吸水ショーツ新発売"); got != CategoryUnderwear {
		t.Errorf("Expected underwear, got %s", got)
	}
}
