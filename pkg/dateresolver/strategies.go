package dateresolver

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Strategy names, also used as metric labels.
const (
	StrategyExactPhrase    = "exact-phrase"
	StrategyNextMonth      = "next-month"
	StrategyRelativeOffset = "relative-offset"
	StrategyCalendarPhrase = "calendar-phrase"
	StrategyFuzzyAbsolute  = "fuzzy-absolute"
)

// Hindi words are matched as whole tokens: "कल" also occurs inside longer words.
var hindiDayOffsets = map[string]int{
	"परसों": 2,
	"परसो":  2,
	"कल":    1,
}

// ExactPhrase handles "day after tomorrow" and "tomorrow" anywhere in the text,
// plus their Hindi equivalents. "day after tomorrow" must be checked first.
func ExactPhrase() Strategy {
	return Strategy{
		Name: StrategyExactPhrase,
		Resolve: func(expr string, anchor time.Time) Outcome {
			switch {
			case strings.Contains(expr, "day after tomorrow"):
				return Matched(anchor.AddDate(0, 0, 2))
			case strings.Contains(expr, "tomorrow"):
				return Matched(anchor.AddDate(0, 0, 1))
			}

			days := 0
			for _, tok := range strings.Fields(expr) {
				if n, ok := hindiDayOffsets[strings.Trim(tok, ".,!?।")]; ok && n > days {
					days = n
				}
			}
			if days > 0 {
				return Matched(anchor.AddDate(0, 0, days))
			}
			return NotApplicable()
		},
	}
}

var nextMonthPhrases = map[string]bool{
	"next month":  true,
	"अगले महीने":  true,
	"अगला महीना":  true,
	"अगले महीना":  true,
}

// NextMonth handles the literal "next month" (the whole expression).
func NextMonth() Strategy {
	return Strategy{
		Name: StrategyNextMonth,
		Resolve: func(expr string, anchor time.Time) Outcome {
			if !nextMonthPhrases[expr] {
				return NotApplicable()
			}
			return Matched(AddMonthsClamped(anchor, 1))
		},
	}
}

var (
	afterDaysPattern      = regexp.MustCompile(`(?i)after\s+(\d+)\s*days?`)
	hindiAfterDaysPattern = regexp.MustCompile(`(\d+)\s*दिन\s*(?:के\s*)?बाद`)
)

// RelativeOffset handles "after N day(s)" and "N दिन बाद" anywhere in the text.
func RelativeOffset() Strategy {
	return Strategy{
		Name: StrategyRelativeOffset,
		Resolve: func(expr string, anchor time.Time) Outcome {
			for _, re := range []*regexp.Regexp{afterDaysPattern, hindiAfterDaysPattern} {
				m := re.FindStringSubmatch(expr)
				if m == nil {
					continue
				}
				n, err := strconv.Atoi(m[1])
				if err != nil {
					return NotApplicable()
				}
				return Matched(anchor.AddDate(0, 0, n))
			}
			return NotApplicable()
		},
	}
}

var (
	explicitYearPattern = regexp.MustCompile(`\b(?:1[89]|2[0-9])\d{2}\b`)
	// "10-03" reads as a wall-clock time and "10/03" as a date rolled into the
	// next year; both belong to FuzzyAbsolute.
	numericOnlyPattern  = regexp.MustCompile(`^\W*\d{1,2}\s*[:\-：/.]\s*\d{1,2}(?:\s*[/.\-]\s*\d{2,4})?\W*$`)
	bareMonthPattern    = regexp.MustCompile(`^\W*` + monthPattern + `\.?\W*$`)
	casualNowPattern    = regexp.MustCompile(`^\W*(?:now|today)\W*$`)
	offsetPhrasePattern = regexp.MustCompile(`\b(?:from\s+(?:now|today)|later|hence)\b`)
)

// CalendarPhrase resolves counted spans ("2 weeks from now", "3 days later"),
// next/this periods ("next week", "this weekend") and then runs a general
// natural-language parser ("next monday", "march 15") seeded with the anchor.
// Expressions carrying an explicit four-digit year are left to FuzzyAbsolute,
// since the phrase rules ignore years and would land on the anchor's year.
func CalendarPhrase() Strategy {
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)

	return Strategy{
		Name: StrategyCalendarPhrase,
		Resolve: func(expr string, anchor time.Time) Outcome {
			if explicitYearPattern.MatchString(expr) {
				return NotApplicable()
			}
			if t, ok := relativeSpan(expr, anchor); ok {
				return Matched(t)
			}
			// The rules add fixed durations; parse at UTC noon so DST shifts never change the day.
			y, m, d := anchor.Date()
			res, err := parser.Parse(expr, time.Date(y, m, d, 12, 0, 0, 0, time.UTC))
			if err != nil || res == nil || weakMatch(expr, res.Text) {
				return NotApplicable()
			}
			ry, rm, rd := res.Time.Date()
			return Matched(time.Date(ry, rm, rd, 0, 0, 0, 0, anchor.Location()))
		},
	}
}

// weakMatch rejects parser matches that name no day: a bare month word ("may",
// "june"), a numeric day-month or clock time, or a lone "now"/"today" picked
// out of an offset the parser did not understand ("2 fortnights from now").
func weakMatch(expr, text string) bool {
	switch {
	case numericOnlyPattern.MatchString(text):
		return true
	case bareMonthPattern.MatchString(text):
		return true
	case casualNowPattern.MatchString(text) && offsetPhrasePattern.MatchString(expr):
		return true
	}
	return false
}
