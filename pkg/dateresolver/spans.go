package dateresolver

import (
	"regexp"
	"strconv"
	"time"
)

const (
	spanCount = `(\d+|an?|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)`
	spanUnit  = `(day|week|month|year)s?`
)

var spanWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

var (
	// "2 days from now", "a week from today", "3 days later"
	spanFromNowPattern = regexp.MustCompile(`\b` + spanCount + `\s+` + spanUnit + `\s+(?:from\s+(?:now|today)|later|hence)\b`)
	// "after 2 weeks", "in 3 months", "within a week"
	spanAfterPattern   = regexp.MustCompile(`\b(?:after|in|within)\s+` + spanCount + `\s+` + spanUnit + `\b`)
	// "next week", "next year", "next weekend", "this weekend"
	periodPattern      = regexp.MustCompile(`\b(next|coming|this)\s+(weekend|week|year)\b`)
	// "march next year" or "monday next week" name a day the period rules cannot place.
	namedDayPattern    = regexp.MustCompile(`\b(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?|(?:mon|tues|wednes|thurs|fri|satur|sun)day)\b`)
)

// relativeSpan resolves offsets the phrase rules either miss or reduce to
// "now": counted spans forward from the anchor and next/this periods.
func relativeSpan(expr string, anchor time.Time) (time.Time, bool) {
	for _, re := range []*regexp.Regexp{spanFromNowPattern, spanAfterPattern} {
		m := re.FindStringSubmatch(expr)
		if m == nil {
			continue
		}
		n, ok := parseSpanCount(m[1])
		if !ok {
			return time.Time{}, false
		}
		return shiftBy(anchor, n, m[2]), true
	}

	m := periodPattern.FindStringSubmatch(expr)
	if m == nil || namedDayPattern.MatchString(expr) {
		return time.Time{}, false
	}
	next := m[1] != "this"
	switch m[2] {
	case "week":
		if next {
			return anchor.AddDate(0, 0, 7), true
		}
	case "year":
		if next {
			return AddMonthsClamped(anchor, 12), true
		}
	case "weekend":
		return anchor.AddDate(0, 0, daysToWeekend(anchor.Weekday(), next)), true
	}
	return time.Time{}, false
}

func parseSpanCount(s string) (int, bool) {
	if n, ok := spanWords[s]; ok {
		return n, true
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func shiftBy(anchor time.Time, n int, unit string) time.Time {
	switch unit {
	case "day":
		return anchor.AddDate(0, 0, n)
	case "week":
		return anchor.AddDate(0, 0, 7*n)
	case "month":
		return AddMonthsClamped(anchor, n)
	default:
		return AddMonthsClamped(anchor, 12*n)
	}
}

// daysToWeekend returns the offset to the Saturday of this weekend, or of the
// following one when next is set. On a Saturday or Sunday "this weekend" is today.
func daysToWeekend(wd time.Weekday, next bool) int {
	switch wd {
	case time.Saturday:
		if next {
			return 7
		}
		return 0
	case time.Sunday:
		if next {
			return 6
		}
		return 0
	}
	days := int(time.Saturday - wd)
	if next {
		days += 7
	}
	return days
}
