// Package dateresolver turns free-text date expressions ("tomorrow", "after 5 days",
// "next Monday", "15 March", "कल") into calendar dates relative to an anchor date.
//
// Resolution runs an ordered list of strategies and stops at the first one that
// matches. An expression nobody understands resolves to nothing; that is not an error.
package dateresolver

import (
	"strings"
	"time"

	"flight-query-service/pkg/logger"
)

// Layout is the only format a resolved date is rendered in.
const Layout = "2006-01-02"

// Outcome is what a single strategy reports: a matched date or not applicable.
type Outcome struct {
	date    time.Time
	matched bool
}

// Matched wraps a date produced by a strategy.
func Matched(t time.Time) Outcome {
	return Outcome{date: t, matched: true}
}

// NotApplicable reports that a strategy did not recognise the expression.
func NotApplicable() Outcome {
	return Outcome{}
}

// Date returns the matched date and whether the strategy matched at all.
func (o Outcome) Date() (time.Time, bool) {
	return o.date, o.matched
}

// Strategy is one step of the cascade. Resolve receives the normalized expression
// and a midnight anchor.
type Strategy struct {
	Name    string
	Resolve func(expression string, anchor time.Time) Outcome
}

// Result is a successfully resolved date plus the strategy that produced it.
type Result struct {
	Date     time.Time
	Strategy string
}

// String renders the date as YYYY-MM-DD.
func (r Result) String() string {
	return r.Date.Format(Layout)
}

// Resolver runs the strategy cascade. It holds no per-request state and is safe
// for concurrent use.
type Resolver struct {
	strategies []Strategy
	logger     logger.Logger
	onMatch    func(strategy string)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug traces and recovered panics.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMatchHook registers a callback invoked with the winning strategy name.
func WithMatchHook(fn func(strategy string)) Option {
	return func(r *Resolver) {
		r.onMatch = fn
	}
}

// WithStrategies replaces the default cascade.
func WithStrategies(strategies ...Strategy) Option {
	return func(r *Resolver) {
		r.strategies = strategies
	}
}

// New creates a resolver with the default cascade:
// exact phrases, "next month", "after N days", calendar phrases, fuzzy absolute dates.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		strategies: DefaultStrategies(),
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DefaultStrategies returns the cascade in priority order.
func DefaultStrategies() []Strategy {
	return []Strategy{
		ExactPhrase(),
		NextMonth(),
		RelativeOffset(),
		CalendarPhrase(),
		FuzzyAbsolute(),
	}
}

// Resolve resolves expression against anchor. The boolean is false when the
// expression is empty or no strategy matched.
func (r *Resolver) Resolve(expression string, anchor time.Time) (Result, bool) {
	normalized := Normalize(expression)
	if normalized == "" {
		return Result{}, false
	}
	base := Anchor(anchor)

	for _, s := range r.strategies {
		t, ok := r.apply(s, normalized, base).Date()
		if !ok {
			continue
		}
		date := Anchor(t)
		if date.Year() < 1 || date.Year() > 9999 {
			r.logger.Debug("Discarding out-of-range date", "strategy", s.Name, "expression", expression)
			continue
		}
		r.logger.Debug("Resolved date expression",
			"expression", expression,
			"anchor", base.Format(Layout),
			"strategy", s.Name,
			"date", date.Format(Layout))
		if r.onMatch != nil {
			r.onMatch(s.Name)
		}
		return Result{Date: date, Strategy: s.Name}, true
	}

	r.logger.Debug("Date expression not resolved", "expression", expression, "anchor", base.Format(Layout))
	return Result{}, false
}

// ResolveReturn resolves a return-date expression relative to an already
// resolved departure date, never relative to today.
func (r *Resolver) ResolveReturn(expression string, departure Result) (Result, bool) {
	return r.Resolve(expression, departure.Date)
}

func (r *Resolver) apply(s Strategy, expression string, anchor time.Time) (out Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Date strategy panicked", "strategy", s.Name, "expression", expression, "panic", rec)
			out = NotApplicable()
		}
	}()
	return s.Resolve(expression, anchor)
}

// Anchor truncates t to midnight in its own location.
func Anchor(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddMonthsClamped moves t by months calendar months. When the target month is
// shorter, the day is clamped to its last day (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

var devanagariDigits = strings.NewReplacer(
	"०", "0", "१", "1", "२", "2", "३", "3", "४", "4",
	"५", "5", "६", "6", "७", "7", "८", "8", "९", "9",
)

// Normalize lower-cases, trims, collapses whitespace and maps Devanagari digits to ASCII.
func Normalize(expression string) string {
	s := devanagariDigits.Replace(expression)
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
