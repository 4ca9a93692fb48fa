package dateresolver

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
)

const monthPattern = `(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var (
	// Normalized input is lower-case, so an ISO timestamp separator reads "t".
	isoDatePattern     = regexp.MustCompile(`\b(\d{4})[-/.](\d{1,2})[-/.](\d{1,2})(?:\b|t)`)
	dayMonthPattern    = regexp.MustCompile(`\b(\d{1,2})(?:st|nd|rd|th)?(?:\s+of)?\s+` + monthPattern + `\.?(?:,?\s+(\d{4}))?\b`)
	monthDayPattern    = regexp.MustCompile(`\b` + monthPattern + `\.?\s+(\d{1,2})(?:st|nd|rd|th)?(?:,?\s+(\d{4}))?\b`)
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[-/.](\d{1,2})(?:[-/.](\d{4}|\d{2}))?\b`)
)

var monthByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// FuzzyAbsolute finds a loosely formatted absolute date inside the text
// ("2025-03-10", "10/03/2025", "15th of March", "march 15, 2026", "10-03") and
// parses it day-first. A missing year is taken from the anchor.
//
// The expression must contain both a day and a month; a lone number or a lone
// word never produces a date.
func FuzzyAbsolute() Strategy {
	return Strategy{
		Name: StrategyFuzzyAbsolute,
		Resolve: func(expr string, anchor time.Time) Outcome {
			token, ok := dateToken(expr, anchor.Year())
			if !ok {
				return NotApplicable()
			}
			t, err := dateparse.ParseIn(token, anchor.Location(), dateparse.PreferMonthFirst(false))
			if err != nil {
				return NotApplicable()
			}
			return Matched(t)
		},
	}
}

// dateToken extracts the first date-looking token and rewrites it into a shape
// dateparse reads unambiguously: "2006-01-02", "2 Jan 2006" or "02/01/2006".
func dateToken(expr string, defaultYear int) (string, bool) {
	if m := isoDatePattern.FindStringSubmatch(expr); m != nil {
		return fmt.Sprintf("%s-%s-%s", m[1], pad(m[2]), pad(m[3])), true
	}
	if m := dayMonthPattern.FindStringSubmatch(expr); m != nil {
		return namedDate(m[1], m[2], m[3], defaultYear)
	}
	if m := monthDayPattern.FindStringSubmatch(expr); m != nil {
		return namedDate(m[2], m[1], m[3], defaultYear)
	}
	if m := numericDatePattern.FindStringSubmatch(expr); m != nil {
		year, ok := expandYear(m[3], defaultYear)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s/%s/%04d", pad(m[1]), pad(m[2]), year), true
	}
	return "", false
}

func namedDate(day, month, year string, defaultYear int) (string, bool) {
	if len(month) < 3 {
		return "", false
	}
	mon, ok := monthByPrefix[month[:3]]
	if !ok {
		return "", false
	}
	y, ok := expandYear(year, defaultYear)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s %s %04d", day, mon.String()[:3], y), true
}

// expandYear fills a missing year and widens two-digit years into this century.
func expandYear(year string, defaultYear int) (int, bool) {
	if year == "" {
		return defaultYear, true
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, false
	}
	if len(year) == 2 {
		y += 2000
	}
	return y, true
}

func pad(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
