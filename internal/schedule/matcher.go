package schedule

import (
	"github.com/fortuna/dugout/internal/statsapi"
)

// Matcher finds the game summary recording the result of a schedule entry
type Matcher interface {
	Match(entry statsapi.Schedule, summaries []statsapi.GameSummary) (*statsapi.GameSummary, bool)
}

// MatcherFunc adapts a function to the Matcher interface
type MatcherFunc func(entry statsapi.Schedule, summaries []statsapi.GameSummary) (*statsapi.GameSummary, bool)

// Match calls f
func (f MatcherFunc) Match(entry statsapi.Schedule, summaries []statsapi.GameSummary) (*statsapi.GameSummary, bool) {
	return f(entry, summaries)
}

// EventIDMatcher matches summaries that point back at the entry via event_id
var EventIDMatcher = MatcherFunc(func(entry statsapi.Schedule, summaries []statsapi.GameSummary) (*statsapi.GameSummary, bool) {
	if entry.ID == "" {
		return nil, false
	}
	for i := range summaries {
		if summaries[i].EventID == entry.ID {
			return &summaries[i], true
		}
	}
	return nil, false
})

// IDMatcher matches summaries that share the entry's id
var IDMatcher = MatcherFunc(func(entry statsapi.Schedule, summaries []statsapi.GameSummary) (*statsapi.GameSummary, bool) {
	if entry.ID == "" {
		return nil, false
	}
	for i := range summaries {
		if summaries[i].ID == entry.ID {
			return &summaries[i], true
		}
	}
	return nil, false
})

// DefaultMatchers tries the event_id back-reference first, then id equality
func DefaultMatchers() []Matcher {
	return []Matcher{EventIDMatcher, IDMatcher}
}

// findSummary returns the first match across strategies, in order
func findSummary(matchers []Matcher, entry statsapi.Schedule, summaries []statsapi.GameSummary) (*statsapi.GameSummary, bool) {
	if len(summaries) == 0 {
		return nil, false
	}
	for _, m := range matchers {
		if summary, ok := m.Match(entry, summaries); ok {
			return summary, true
		}
	}
	return nil, false
}
