package config

import (
	"time"
)

// NewsAPIDelay returns the delay inserted after each news-search call.
func (p *Pacing) NewsAPIDelay() time.Duration {
	if p.NewsAPIDelayMs <= 0 {
		return 1000 * time.Millisecond
	}
	return time.Duration(p.NewsAPIDelayMs) * time.Millisecond
}

// ScrapeDelay returns the delay inserted after each scraped target.
func (p *Pacing) ScrapeDelay() time.Duration {
	if p.ScrapeDelayMs <= 0 {
		return 2000 * time.Millisecond
	}
	return time.Duration(p.ScrapeDelayMs) * time.Millisecond
}

// TranslateDelay returns the delay inserted between per-field
// translation calls on the same item.
func (p *Pacing) TranslateDelay() time.Duration {
	if p.TranslateDelayMs <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(p.TranslateDelayMs) * time.Millisecond
}
