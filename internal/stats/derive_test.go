package stats_test

import (
	"reflect"
	"testing"

	"github.com/fortuna/dugout/internal/stats"
	"github.com/fortuna/dugout/internal/statsapi"
)

func seasonOf(players map[string]statsapi.PlayerStatGroups) *statsapi.SeasonStatsResponse {
	data := &statsapi.SeasonStatsData{Players: map[string]statsapi.PlayerSeasonStats{}}
	for id, groups := range players {
		data.Players[id] = statsapi.PlayerSeasonStats{Stats: groups}
	}
	return &statsapi.SeasonStatsResponse{TeamID: "t1", StatsData: data}
}

// cell finds a rendered value by column label
func cell(t *testing.T, table stats.Table, row int, label string) string {
	t.Helper()
	for i, c := range table.Columns {
		if c.Label == label {
			return table.Rows[row].Cells[i].Text
		}
	}
	t.Fatalf("no column %q in %v", label, table.View)
	return ""
}

var roster = []statsapi.TeamPlayer{
	{ID: "p1", FirstName: "Ann", LastName: "Lee", Number: "7"},
	{ID: "p2", FirstName: "Bo", LastName: "Diaz"},
	{ID: "p3", FirstName: "", LastName: ""},
}

func TestBattingAverageComputed(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"h": 2, "ab": 4}},
	})

	table := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Standard}, roster, season)
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if got := cell(t, table, 0, "AVG"); got != "0.500" {
		t.Errorf("AVG = %q, want %q", got, "0.500")
	}
	if got := table.Rows[0].Player; got != "Ann Lee, #7" {
		t.Errorf("Player = %q, want %q", got, "Ann Lee, #7")
	}
}

func TestServiceValuesWin(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"h": 2, "ab": 4, "avg": 0.321, "obp": 0.4, "slg": 0.6, "ops": 1.0}},
	})

	table := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Standard}, roster, season)

	want := map[string]string{"AVG": "0.321", "OBP": "0.400", "SLG": "0.600", "OPS": "1.000"}
	for label, w := range want {
		if got := cell(t, table, 0, label); got != w {
			t.Errorf("%s = %q, want %q", label, got, w)
		}
	}
}

func TestComputedRateStats(t *testing.T) {
	// 1B, 2B, HR in 10 AB with 2 BB, 1 HBP, 1 SF
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{
			"ab": 10, "h": 3, "1B": 1, "2B": 1, "hr": 1, "bb": 2, "hbp": 1, "shf": 1,
		}},
	})

	table := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Standard}, roster, season)

	want := map[string]string{
		"AVG": "0.300",
		"OBP": "0.429", // 6/14
		"SLG": "0.700", // 7/10
		"OPS": "1.129",
	}
	for label, w := range want {
		if got := cell(t, table, 0, label); got != w {
			t.Errorf("%s = %q, want %q", label, got, w)
		}
	}
}

func TestZeroGuards(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"pa": 3}, Defense: statsapi.CountingStats{}},
	})

	tests := []struct {
		view  stats.View
		label string
		want  string
	}{
		{stats.View{Category: stats.Batting, Subtype: stats.Standard}, "SB%", "0.0%"},
		{stats.View{Category: stats.Batting, Subtype: stats.Standard}, "AVG", "0.000"},
		{stats.View{Category: stats.Batting, Subtype: stats.Advanced}, "PA/BB", "0.000"},
		{stats.View{Category: stats.Batting, Subtype: stats.Advanced}, "C%", "0.0%"},
		{stats.View{Category: stats.Pitching, Subtype: stats.Advanced}, "K/BB", "0.000"},
		{stats.View{Category: stats.Fielding, Subtype: stats.Standard}, "FPCT", "1.000"},
		{stats.View{Category: stats.Fielding, Subtype: stats.Standard}, "TC", "0"},
		{stats.View{Category: stats.Fielding, Subtype: stats.Catching}, "CS%", "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.view.String()+" "+tt.label, func(t *testing.T) {
			table := stats.Derive(tt.view, roster, season)
			if got := cell(t, table, 0, tt.label); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.label, got, tt.want)
			}
		})
	}
}

func TestAbsentPassThroughPlaceholders(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"ab": 1}},
	})

	batting := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Advanced}, roster, season)
	if got := cell(t, batting, 0, "BABIP"); got != "0.000" {
		t.Errorf("BABIP = %q, want %q", got, "0.000")
	}
	if got := cell(t, batting, 0, "LD%"); got != "0.0%" {
		t.Errorf("LD%% = %q, want %q", got, "0.0%")
	}
	if got := cell(t, batting, 0, "QAB"); got != "0" {
		t.Errorf("QAB = %q, want %q", got, "0")
	}
}

func TestFieldingComposites(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Defense: statsapi.CountingStats{"a": 3, "po": 6, "e": 1, "sb_allowed": 3, "cs_by_catcher": 1}},
	})

	fielding := stats.Derive(stats.View{Category: stats.Fielding, Subtype: stats.Standard}, roster, season)
	if got := cell(t, fielding, 0, "TC"); got != "10" {
		t.Errorf("TC = %q, want %q", got, "10")
	}
	if got := cell(t, fielding, 0, "FPCT"); got != "0.900" {
		t.Errorf("FPCT = %q, want %q", got, "0.900")
	}

	catching := stats.Derive(stats.View{Category: stats.Fielding, Subtype: stats.Catching}, roster, season)
	if got := cell(t, catching, 0, "SB-ATT"); got != "4" {
		t.Errorf("SB-ATT = %q, want %q", got, "4")
	}
	if got := cell(t, catching, 0, "CS%"); got != "25.0%" {
		t.Errorf("CS%% = %q, want %q", got, "25.0%")
	}
}

func TestGamesPlayedFallback(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"gp": 9}, General: statsapi.CountingStats{"gp": 0}},
		"p2": {Offense: statsapi.CountingStats{"gp": 9}, General: statsapi.CountingStats{"gp": 11}},
	})

	table := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Standard}, roster, season)
	got := []string{cell(t, table, 0, "G"), cell(t, table, 1, "G")}
	if want := []string{"9", "11"}; !reflect.DeepEqual(got, want) {
		t.Errorf("G = %v, want %v", got, want)
	}
}

func TestPlayersWithoutStatsExcluded(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"ab": 1}},
		"p2": {General: statsapi.CountingStats{"gp": 3}},
		"ghost": {Offense: statsapi.CountingStats{"ab": 9}},
	})

	table := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Standard}, roster, season)
	if len(table.Rows) != 1 || table.Rows[0].PlayerID != "p1" {
		t.Errorf("expected only p1, got %+v", table.Rows)
	}

	empty := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Standard}, roster, nil)
	if len(empty.Rows) != 0 {
		t.Errorf("expected no rows without season stats, got %d", len(empty.Rows))
	}
}

func TestUnknownPlayerName(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p3": {Defense: statsapi.CountingStats{"a": 1}},
	})

	table := stats.Derive(stats.View{Category: stats.Fielding, Subtype: stats.Standard}, roster, season)
	if len(table.Rows) != 1 || table.Rows[0].Player != "Unknown Player" {
		t.Errorf("unexpected rows %+v", table.Rows)
	}
}

func TestRowsSortedBySortColumn(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"h": 1, "ab": 4}, Pitching: statsapi.CountingStats{"era": 4.5}},
		"p2": {Offense: statsapi.CountingStats{"h": 3, "ab": 4}, Pitching: statsapi.CountingStats{"era": 2.25}},
		"p3": {Offense: statsapi.CountingStats{"h": 2, "ab": 4}},
	})

	batting := stats.Derive(stats.View{Category: stats.Batting, Subtype: stats.Standard}, roster, season)
	if got, want := playerIDs(batting), []string{"p2", "p3", "p1"}; !reflect.DeepEqual(got, want) {
		t.Errorf("batting order = %v, want %v", got, want)
	}

	pitching := stats.Derive(stats.View{Category: stats.Pitching, Subtype: stats.Standard}, roster, season)
	if got, want := playerIDs(pitching), []string{"p2", "p1", "p3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("pitching order = %v, want %v", got, want)
	}
}

func playerIDs(table stats.Table) []string {
	var ids []string
	for _, r := range table.Rows {
		ids = append(ids, r.PlayerID)
	}
	return ids
}

func TestUnsupportedViewFallsBack(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"gp": 4}},
	})

	view := stats.View{Category: stats.Pitching, Subtype: stats.Catching}
	table := stats.Derive(view, roster, season)

	if got, want := table.Headers(), []string{"Player", "G"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
	if got := cell(t, table, 0, "G"); got != "4" {
		t.Errorf("G = %q, want %q", got, "4")
	}

	var abbrevs []string
	for _, e := range table.Legend.Entries {
		abbrevs = append(abbrevs, e.Abbrev)
	}
	if want := []string{"G", "PA", "AB"}; !reflect.DeepEqual(abbrevs, want) {
		t.Errorf("legend = %v, want %v", abbrevs, want)
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	season := seasonOf(map[string]statsapi.PlayerStatGroups{
		"p1": {Offense: statsapi.CountingStats{"h": 2, "ab": 5, "sb": 1, "cs": 1}},
		"p2": {Offense: statsapi.CountingStats{"h": 4, "ab": 5}},
	})

	for _, view := range stats.Views() {
		first := stats.Derive(view, roster, season)
		second := stats.Derive(view, roster, season)
		if !reflect.DeepEqual(first.Rows, second.Rows) || !reflect.DeepEqual(first.Legend, second.Legend) {
			t.Errorf("%v: derivation differs between runs", view)
		}
	}

	if roster[0].ID != "p1" || season.StatsData.Players["p1"].Stats.Offense.Get("h") != 2 {
		t.Error("Derive modified its input")
	}
}

func TestLegendTitles(t *testing.T) {
	tests := []struct {
		view stats.View
		want string
	}{
		{stats.View{Category: stats.Batting, Subtype: stats.Standard}, "Batting - Standard Statistics Abbreviations"},
		{stats.View{Category: stats.Fielding, Subtype: stats.Catching}, "Fielding - Catching Statistics Abbreviations"},
	}

	for _, tt := range tests {
		if got := stats.LegendFor(tt.view).Title; got != tt.want {
			t.Errorf("LegendFor(%v).Title = %q, want %q", tt.view, got, tt.want)
		}
	}
}

func TestEveryColumnHasLegendEntry(t *testing.T) {
	for _, view := range stats.Views() {
		legend := stats.LegendFor(view)
		columns := stats.Columns(view)
		if len(legend.Entries) != len(columns) {
			t.Errorf("%v: %d legend entries for %d columns", view, len(legend.Entries), len(columns))
			continue
		}
		for i, c := range columns {
			if legend.Entries[i].Abbrev != c.Label {
				t.Errorf("%v: legend[%d] = %q, column = %q", view, i, legend.Entries[i].Abbrev, c.Label)
			}
		}
	}
}

func TestNewView(t *testing.T) {
	tests := []struct {
		category, subtype string
		want              stats.View
		supported         bool
	}{
		{"", "", stats.View{Category: stats.Batting, Subtype: stats.Standard}, true},
		{"Pitching", "ADVANCED", stats.View{Category: stats.Pitching, Subtype: stats.Advanced}, true},
		{"fielding", "catching", stats.View{Category: stats.Fielding, Subtype: stats.Catching}, true},
		{"batting", "catching", stats.View{Category: stats.Batting, Subtype: stats.Catching}, false},
	}

	for _, tt := range tests {
		got := stats.NewView(tt.category, tt.subtype)
		if got != tt.want {
			t.Errorf("NewView(%q, %q) = %v, want %v", tt.category, tt.subtype, got, tt.want)
		}
		if got.Supported() != tt.supported {
			t.Errorf("NewView(%q, %q).Supported() = %v, want %v", tt.category, tt.subtype, got.Supported(), tt.supported)
		}
	}
}
