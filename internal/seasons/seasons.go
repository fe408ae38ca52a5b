package seasons

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/fortuna/dugout/internal/statsapi"
)

// Order lists seasons most recent first within a year
var Order = []statsapi.SeasonName{
	statsapi.SeasonFall,
	statsapi.SeasonSummer,
	statsapi.SeasonSpring,
	statsapi.SeasonWinter,
}

// Grouping is the result of bucketing teams by "Season Year" label
type Grouping struct {
	Buckets map[string][]statsapi.Team
	Order   []string
}

// Rank orders seasons fall=0, summer=1, spring=2, winter=3.
// Unknown names rank as fall.
func Rank(season statsapi.SeasonName) int {
	normalized := Normalize(season)
	for i, s := range Order {
		if s == normalized {
			return i
		}
	}
	return 0
}

// Normalize lowercases a season name and maps empty or unknown names to fall
func Normalize(season statsapi.SeasonName) statsapi.SeasonName {
	name := statsapi.SeasonName(strings.ToLower(strings.TrimSpace(string(season))))
	for _, s := range Order {
		if s == name {
			return s
		}
	}
	return statsapi.SeasonFall
}

// FormatSeasonName capitalises the first letter ("fall" -> "Fall")
func FormatSeasonName(season statsapi.SeasonName) string {
	s := string(season)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// Label builds the bucket key of a season and year, e.g. "Fall 2025"
func Label(season statsapi.SeasonName, year int) string {
	return FormatSeasonName(season) + " " + strconv.Itoa(year)
}

// TeamLabel is the bucket a team belongs to. A missing year defaults to the
// year of now and a missing season to fall.
func TeamLabel(team statsapi.Team, now time.Time) string {
	year := team.SeasonYear
	if year == 0 {
		year = now.Year()
	}
	return Label(Normalize(team.SeasonName), year)
}

// maxCombinationYears bounds the year span Combinations enumerates
const maxCombinationYears = 500

// Combinations lists every label from startYear down to endYear, four per
// year. Spans wider than maxCombinationYears yield nil.
func Combinations(startYear, endYear int) []string {
	if startYear < endYear {
		return nil
	}
	span := uint64(startYear) - uint64(endYear)
	if span >= maxCombinationYears {
		return nil
	}
	labels := make([]string, 0, int(span+1)*len(Order))
	for i := 0; i <= int(span); i++ {
		year := startYear - i
		for _, season := range Order {
			labels = append(labels, Label(season, year))
		}
	}
	return labels
}

// SortedLabels orders the non-empty bucket keys most recent first
func SortedLabels(buckets map[string][]statsapi.Team) []string {
	if len(buckets) == 0 {
		return []string{}
	}

	minYear, maxYear := 0, 0
	found := false
	for key := range buckets {
		year, ok := labelYear(key)
		if !ok {
			continue
		}
		if !found || year > maxYear {
			maxYear = year
		}
		if !found || year < minYear {
			minYear = year
		}
		found = true
	}
	if !found {
		return []string{}
	}

	combinations := Combinations(maxYear, minYear)
	if combinations == nil {
		return sortLabels(buckets)
	}

	ordered := []string{}
	for _, label := range combinations {
		if len(buckets[label]) > 0 {
			ordered = append(ordered, label)
		}
	}
	return ordered
}

// sortLabels orders the non-empty keys by year descending, then season rank
func sortLabels(buckets map[string][]statsapi.Team) []string {
	type key struct {
		label string
		year  int
		rank  int
	}

	keys := []key{}
	for label, teams := range buckets {
		year, ok := labelYear(label)
		idx := strings.LastIndexByte(label, ' ')
		if !ok || idx < 0 || len(teams) == 0 {
			continue
		}
		keys = append(keys, key{label: label, year: year, rank: Rank(statsapi.SeasonName(label[:idx]))})
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].rank < keys[j].rank
	})

	ordered := make([]string, 0, len(keys))
	for _, k := range keys {
		ordered = append(ordered, k.label)
	}
	return ordered
}

// Group buckets teams by season label, sorts each bucket by name and
// returns the labels most recent first.
func Group(teams []statsapi.Team, now time.Time) Grouping {
	buckets := make(map[string][]statsapi.Team)
	for _, team := range teams {
		label := TeamLabel(team, now)
		buckets[label] = append(buckets[label], team)
	}

	for _, bucket := range buckets {
		SortByName(bucket)
	}

	return Grouping{
		Buckets: buckets,
		Order:   SortedLabels(buckets),
	}
}

// SortByName sorts teams in place by English collation order, stable
func SortByName(teams []statsapi.Team) {
	c := collate.New(language.English)
	sort.SliceStable(teams, func(i, j int) bool {
		return c.CompareString(teams[i].Name, teams[j].Name) < 0
	})
}

func labelYear(label string) (int, bool) {
	idx := strings.LastIndexByte(label, ' ')
	year, err := strconv.Atoi(label[idx+1:])
	if err != nil {
		return 0, false
	}
	return year, true
}
