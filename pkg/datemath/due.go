package datemath

import (
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
)

// ResolveDue turns a free-text due phrase into an absolute time. It tries, in order:
// literal keywords (today/now, tomorrow/tmrw/tmr, next week), a weekday name prefix,
// fuzzy natural-language parsing, then the explicit layouts YYYY-MM-DD, MM/DD/YYYY, DD/MM/YYYY.
// Date-only results are moved to 23:59:59 so a task due today is not already overdue.
func (p *Parser) ResolveDue(phrase string, now time.Time) (time.Time, bool) {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(phrase)))
	for i, w := range words {
		words[i] = strings.TrimRight(w, ",.!?;")
	}
	if len(words) == 0 {
		return time.Time{}, false
	}
	now = now.In(p.location)

	if t, ok := p.keywordDate(words, now); ok {
		return p.EndOfDay(t), true
	}
	if t, ok := p.weekdayDate(words, now); ok {
		return p.EndOfDay(t), true
	}
	if t, ok := p.fuzzyDate(words, now); ok {
		return t, true
	}
	for _, layout := range explicitLayouts {
		if t, err := time.ParseInLocation(layout, words[0], p.location); err == nil {
			return p.EndOfDay(t), true
		}
	}
	return time.Time{}, false
}

func (p *Parser) keywordDate(words []string, now time.Time) (time.Time, bool) {
	switch words[0] {
	case "today", "now", "tonight":
		return now, true
	case "tomorrow", "tmrw", "tmr":
		return now.AddDate(0, 0, 1), true
	case "next":
		if len(words) > 1 && words[1] == "week" {
			return now.AddDate(0, 0, 7), true
		}
	}
	return time.Time{}, false
}

func (p *Parser) weekdayDate(words []string, now time.Time) (time.Time, bool) {
	w := words[0]
	if (w == "next" || w == "this" || w == "coming") && len(words) > 1 {
		w = words[1]
	}
	if len(w) < 3 {
		return time.Time{}, false
	}
	for _, wd := range weekdayNames {
		if strings.HasPrefix(wd.name, w) {
			return now.AddDate(0, 0, daysUntil(now, wd.day)), true
		}
	}
	return time.Time{}, false
}

// fuzzyDate tries the relative grammar of Parse, then dateparse on the longest word prefix that parses.
func (p *Parser) fuzzyDate(words []string, now time.Time) (time.Time, bool) {
	for n := len(words); n > 0; n-- {
		candidate := strings.Join(words[:n], " ")
		if t, err := p.Parse(candidate, now); err == nil {
			return p.EndOfDay(t), true
		}
	}

	for n := len(words); n > 0; n-- {
		candidate := strings.Join(words[:n], " ")
		if isAllDigits(candidate) {
			continue
		}
		t, err := dateparse.ParseIn(candidate, p.location)
		if err != nil {
			continue
		}
		t = t.In(p.location)
		if t.Year() == 0 {
			t = p.nextOccurrence(t, now)
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return p.EndOfDay(t), true
		}
		return t, true
	}
	return time.Time{}, false
}

// nextOccurrence places a year-less date such as "june 5" in the current year,
// or the next one when that day has already passed.
func (p *Parser) nextOccurrence(t, now time.Time) time.Time {
	now = now.In(p.location)
	t = time.Date(now.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, p.location)
	if t.Before(p.StartOfDay(now)) {
		t = t.AddDate(1, 0, 0)
	}
	return t
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
