package schedule

import (
	"sort"
	"strings"
	"time"

	"github.com/fortuna/dugout/internal/statsapi"
)

const (
	DefaultTimezone = "America/New_York"

	// TBD is used for labels and group keys of entries without a usable start time
	TBD = "TBD"

	monthLayout = "January 2006"
	dayLayout   = "2006-01-02"
	timeLayout  = "3:04 PM"
)

// Order is the direction months (and days within them) are listed in
type Order int

const (
	Ascending Order = iota
	Descending
)

// ParseOrder maps "desc"/"descending" to Descending and anything else to Ascending
func ParseOrder(s string) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "descending":
		return Descending
	default:
		return Ascending
	}
}

func (o Order) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// Row is the display record of one schedule entry
type Row struct {
	ScheduleID string     `json:"schedule_id"`
	Month      string     `json:"month"`
	Day        string     `json:"day"`
	Weekday    string     `json:"weekday,omitempty"`
	DayOfMonth int        `json:"day_of_month,omitempty"`
	Start      *time.Time `json:"start,omitempty"`
	Home       bool       `json:"home"`
	Opponent   string     `json:"opponent"`
	Venue      string     `json:"venue"`
	Label      string     `json:"label"`
	Outcome    Outcome    `json:"outcome"`
	Score      *Score     `json:"score,omitempty"`
}

// DayGroup holds every entry on one calendar day (double-headers included)
type DayGroup struct {
	Day        string `json:"day"`
	Weekday    string `json:"weekday,omitempty"`
	DayOfMonth int    `json:"day_of_month,omitempty"`
	Rows       []Row  `json:"rows"`
}

// MonthGroup holds the days of one month, e.g. "October 2025"
type MonthGroup struct {
	Month string     `json:"month"`
	Days  []DayGroup `json:"days"`
}

// Correlator joins schedule entries with game summaries. It keeps no state
// between calls and is safe for concurrent use.
type Correlator struct {
	location *time.Location
	matchers []Matcher
}

// Option configures a Correlator
type Option func(*Correlator)

// WithLocation sets the zone used for month/day keys and time labels
func WithLocation(loc *time.Location) Option {
	return func(c *Correlator) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithMatchers replaces the result matching strategies
func WithMatchers(matchers ...Matcher) Option {
	return func(c *Correlator) {
		if len(matchers) > 0 {
			c.matchers = matchers
		}
	}
}

// NewCorrelator creates a correlator in DefaultTimezone (UTC when the zone
// database is unavailable) using DefaultMatchers.
func NewCorrelator(opts ...Option) *Correlator {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	c := &Correlator{
		location: loc,
		matchers: DefaultMatchers(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the zone rows are rendered in
func (c *Correlator) Location() *time.Location {
	return c.location
}

// Row builds the display record of a single entry
func (c *Correlator) Row(team statsapi.Team, entry statsapi.Schedule, summaries []statsapi.GameSummary) Row {
	home := InferHome(team, entry)
	row := Row{
		ScheduleID: entry.ID,
		Month:      TBD,
		Day:        TBD,
		Home:       home,
		Opponent:   OpponentDisplay(entry, home),
		Venue:      VenueDisplay(entry),
	}

	start, validStart := c.parseTime(entry.Event.Start.Datetime)
	if validStart {
		row.Start = &start
		row.Month = start.Format(monthLayout)
		row.Day = start.Format(dayLayout)
		row.Weekday = start.Format("Mon")
		row.DayOfMonth = start.Day()
	}

	if summary, ok := findSummary(c.matchers, entry, summaries); ok {
		if score, ok := ResolveScore(summary, home); ok {
			row.Label, row.Outcome = ScoreLabel(score)
			row.Score = &score
			return row
		}
	}

	if validStart {
		row.Label = start.Format(timeLayout)
		row.Outcome = OutcomeScheduled
	} else {
		row.Label = TBD
		row.Outcome = OutcomeTBD
	}
	return row
}

// Correlate builds one row per entry and groups them by month then day.
// Entries without a usable start time are collected in a trailing "TBD" month.
func (c *Correlator) Correlate(team statsapi.Team, entries []statsapi.Schedule, summaries []statsapi.GameSummary, order Order) []MonthGroup {
	rows := make([]Row, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, c.Row(team, entry, summaries))
	}
	return GroupRows(rows, order)
}

// GroupRows buckets already-built rows into months and days
func GroupRows(rows []Row, order Order) []MonthGroup {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)

	// rows without a start sort last; dated rows by day in the requested
	// direction, then by start time ascending within the day
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if (a.Start == nil) != (b.Start == nil) {
			return a.Start != nil
		}
		if a.Start == nil {
			return false
		}
		if a.Day != b.Day {
			if order == Descending {
				return a.Day > b.Day
			}
			return a.Day < b.Day
		}
		return a.Start.Before(*b.Start)
	})

	groups := []MonthGroup{}
	for _, row := range sorted {
		if len(groups) == 0 || groups[len(groups)-1].Month != row.Month {
			groups = append(groups, MonthGroup{Month: row.Month})
		}
		month := &groups[len(groups)-1]

		if len(month.Days) == 0 || month.Days[len(month.Days)-1].Day != row.Day {
			month.Days = append(month.Days, DayGroup{
				Day:        row.Day,
				Weekday:    row.Weekday,
				DayOfMonth: row.DayOfMonth,
			})
		}
		day := &month.Days[len(month.Days)-1]
		day.Rows = append(day.Rows, row)
	}
	return groups
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
}

// parseTime reads service timestamps. Values without a zone are taken to be
// in the correlator's location.
func (c *Correlator) parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, c.location); err == nil {
			return t.In(c.location), true
		}
	}
	return time.Time{}, false
}
