package translate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// contentLimit bounds how much article content is sent to the external
// service, keeping per-item latency and cost predictable.
const contentLimit = 500

const truncationMarker = "..."

// Translation carries the Japanese rendering of an article. A nil field
// means the translation was skipped or failed for that field.
type Translation struct {
	TitleJa   *string
	SummaryJa *string
	ContentJa *string
}

type TranslatorInterface interface {
	Run(ctx context.Context, title, summary, content string) Translation
}

var _ TranslatorInterface = (*Translator)(nil)

// Translator enriches article text with a Japanese rendering. Text that
// already reads as Japanese is passed through untouched, and each field
// is translated by a separate external call paced by a fixed-interval
// limiter.
type Translator struct {
	client  TextTranslator
	limiter *rate.Limiter
}

// NewTranslator wires the external client. A nil client disables
// enrichment: Run returns all-nil translations without external calls.
func NewTranslator(client TextTranslator, delay time.Duration) *Translator {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}
	return &Translator{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(delay), 1),
	}
}

func (t *Translator) Run(ctx context.Context, title, summary, content string) Translation {
	if t.client == nil {
		return Translation{}
	}

	if len([]rune(content)) > contentLimit {
		content = string([]rune(content)[:contentLimit]) + truncationMarker
	}

	return Translation{
		TitleJa:   t.translateText(ctx, title),
		SummaryJa: t.translateText(ctx, summary),
		ContentJa: t.translateText(ctx, content),
	}
}

// translateText translates a single field. Failures degrade to nil and
// never abort the remaining fields.
func (t *Translator) translateText(ctx context.Context, text string) *string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if IsJapanese(text) {
		return &text
	}

	if err := t.limiter.Wait(ctx); err != nil {
		slog.Warn("Translation pacing interrupted", "error", err)
		return nil
	}

	translated, err := t.client.Translate(ctx, text)
	if err != nil {
		slog.Warn("Translation failed, leaving field empty", "error", err)
		return nil
	}

	return &translated
}

// IsJapanese reports whether text already reads as Japanese: more than
// 30% of its runes fall in the hiragana, katakana or CJK ideograph
// ranges. A heuristic, not a language classifier.
func IsJapanese(text string) bool {
	runes := []rune(text)
	if strings.TrimSpace(text) == "" {
		return false
	}

	japanese := 0
	for _, r := range runes {
		switch {
		case r >= 0x3040 && r <= 0x309F: // hiragana
			japanese++
		case r >= 0x30A0 && r <= 0x30FF: // katakana
			japanese++
		case r >= 0x4E00 && r <= 0x9FFF: // CJK ideographs
			japanese++
		}
	}

	return float64(japanese)/float64(len(runes)) > 0.3
}
