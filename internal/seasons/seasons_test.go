package seasons_test

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/fortuna/dugout/internal/seasons"
	"github.com/fortuna/dugout/internal/statsapi"
)

var now = time.Date(2025, time.October, 19, 12, 0, 0, 0, time.UTC)

func TestLabel(t *testing.T) {
	tests := []struct {
		season statsapi.SeasonName
		year   int
		want   string
	}{
		{statsapi.SeasonFall, 2025, "Fall 2025"},
		{statsapi.SeasonWinter, 2019, "Winter 2019"},
		{statsapi.SeasonSpring, 2024, "Spring 2024"},
	}

	for _, tt := range tests {
		if got := seasons.Label(tt.season, tt.year); got != tt.want {
			t.Errorf("Label(%q, %d) = %q, want %q", tt.season, tt.year, got, tt.want)
		}
	}
}

func TestTeamLabelDefaults(t *testing.T) {
	tests := []struct {
		name string
		team statsapi.Team
		want string
	}{
		{name: "complete", team: statsapi.Team{SeasonName: statsapi.SeasonSummer, SeasonYear: 2024}, want: "Summer 2024"},
		{name: "missing year", team: statsapi.Team{SeasonName: statsapi.SeasonSpring}, want: "Spring 2025"},
		{name: "missing season", team: statsapi.Team{SeasonYear: 2023}, want: "Fall 2023"},
		{name: "missing both", team: statsapi.Team{}, want: "Fall 2025"},
		{name: "upper case season", team: statsapi.Team{SeasonName: "WINTER", SeasonYear: 2022}, want: "Winter 2022"},
		{name: "unknown season", team: statsapi.Team{SeasonName: "monsoon", SeasonYear: 2022}, want: "Fall 2022"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seasons.TeamLabel(tt.team, now); got != tt.want {
				t.Errorf("TeamLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCombinations(t *testing.T) {
	got := seasons.Combinations(2025, 2023)
	if len(got) != 12 {
		t.Fatalf("expected 12 labels, got %d: %v", len(got), got)
	}

	want := []string{"Fall 2025", "Summer 2025", "Spring 2025", "Winter 2025", "Fall 2024"}
	if !reflect.DeepEqual(got[:5], want) {
		t.Errorf("Combinations(2025, 2023)[:5] = %v, want %v", got[:5], want)
	}
	if got[11] != "Winter 2023" {
		t.Errorf("last label = %q, want %q", got[11], "Winter 2023")
	}

	if got := seasons.Combinations(2023, 2025); len(got) != 0 {
		t.Errorf("Combinations(2023, 2025) = %v, want empty", got)
	}
}

func TestCombinationsHugeSpan(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
	}{
		{"far future", 1 << 60, 2025},
		{"full int range", math.MaxInt, math.MinInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := seasons.Combinations(tt.start, tt.end); got != nil {
				t.Errorf("Combinations(%d, %d) returned %d labels, want nil", tt.start, tt.end, len(got))
			}
		})
	}
}

func TestGroupFarApartYears(t *testing.T) {
	teams := []statsapi.Team{
		{Name: "Bulldogs", SeasonName: "spring", SeasonYear: 2025},
		{Name: "Owls", SeasonName: "fall", SeasonYear: 1 << 60},
		{Name: "Hawks", SeasonName: "fall", SeasonYear: 2025},
		{Name: "Bears", SeasonName: "winter", SeasonYear: math.MinInt},
	}

	got := seasons.Group(teams, now).Order
	want := []string{
		seasons.Label("fall", 1<<60),
		"Fall 2025",
		"Spring 2025",
		seasons.Label("winter", math.MinInt),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Group().Order = %v, want %v", got, want)
	}
}

func TestGroupSkipsEmptyYears(t *testing.T) {
	teams := []statsapi.Team{
		{ID: "a", Name: "Owls", SeasonYear: 2023},
		{ID: "b", Name: "Bulldogs", SeasonYear: 2025},
	}

	grouping := seasons.Group(teams, now)

	want := []string{"Fall 2025", "Fall 2023"}
	if !reflect.DeepEqual(grouping.Order, want) {
		t.Errorf("Order = %v, want %v", grouping.Order, want)
	}
	if len(grouping.Buckets) != 2 {
		t.Errorf("expected 2 buckets, got %d", len(grouping.Buckets))
	}
}

func TestGroupOrdersSeasonsWithinYear(t *testing.T) {
	teams := []statsapi.Team{
		{Name: "A", SeasonName: statsapi.SeasonWinter, SeasonYear: 2024},
		{Name: "B", SeasonName: statsapi.SeasonSpring, SeasonYear: 2024},
		{Name: "C", SeasonName: statsapi.SeasonFall, SeasonYear: 2024},
		{Name: "D", SeasonName: statsapi.SeasonSummer, SeasonYear: 2025},
	}

	grouping := seasons.Group(teams, now)

	want := []string{"Summer 2025", "Fall 2024", "Spring 2024", "Winter 2024"}
	if !reflect.DeepEqual(grouping.Order, want) {
		t.Errorf("Order = %v, want %v", grouping.Order, want)
	}
}

func TestGroupSortsBucketByName(t *testing.T) {
	teams := []statsapi.Team{
		{ID: "1", Name: "charlie", SeasonYear: 2025},
		{ID: "2", Name: "Bravo", SeasonYear: 2025},
		{ID: "3", Name: "alpha", SeasonYear: 2025},
	}

	grouping := seasons.Group(teams, now)
	bucket := grouping.Buckets["Fall 2025"]

	var names []string
	for _, team := range bucket {
		names = append(names, team.Name)
	}
	want := []string{"alpha", "Bravo", "charlie"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("bucket names = %v, want %v", names, want)
	}

	// input is left in its original order
	if teams[0].ID != "1" {
		t.Errorf("Group reordered its input: %v", teams)
	}
}

func TestGroupEmpty(t *testing.T) {
	grouping := seasons.Group(nil, now)
	if len(grouping.Order) != 0 || len(grouping.Buckets) != 0 {
		t.Errorf("Group(nil) = %+v, want empty", grouping)
	}
}

func TestRank(t *testing.T) {
	tests := []struct {
		season statsapi.SeasonName
		want   int
	}{
		{statsapi.SeasonFall, 0},
		{statsapi.SeasonSummer, 1},
		{statsapi.SeasonSpring, 2},
		{statsapi.SeasonWinter, 3},
		{"", 0},
	}

	for _, tt := range tests {
		if got := seasons.Rank(tt.season); got != tt.want {
			t.Errorf("Rank(%q) = %d, want %d", tt.season, got, tt.want)
		}
	}
}
