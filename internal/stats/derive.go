package stats

import (
	"sort"
	"strings"

	"github.com/fortuna/dugout/internal/statsapi"
)

// Cell is one rendered value
type Cell struct {
	Key     string  `json:"key"`
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
	Text    string  `json:"text"`
}

// Row is one player's line in a table
type Row struct {
	PlayerID string `json:"player_id"`
	Player   string `json:"player"`
	Number   string `json:"number,omitempty"`
	Cells    []Cell `json:"cells"`
}

// Table is a derived season-stats view. Columns excludes the leading
// player column, which every table has.
type Table struct {
	View    View     `json:"view"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Legend  Legend   `json:"legend"`
}

// Headers returns the column labels including the leading "Player"
func (t Table) Headers() []string {
	headers := make([]string, 0, len(t.Columns)+1)
	headers = append(headers, "Player")
	for _, c := range t.Columns {
		headers = append(headers, c.Label)
	}
	return headers
}

// PlayerDisplay renders "First Last, #12", or "Unknown Player" without a name
func PlayerDisplay(player statsapi.TeamPlayer) string {
	name := player.FullName()
	if name == "" {
		name = "Unknown Player"
	}
	if number := strings.TrimSpace(player.Number); number != "" {
		name += ", #" + number
	}
	return name
}

// HasSeasonStats reports whether a player's groups qualify for a table:
// at least one of offense or defense must be present.
func HasSeasonStats(p statsapi.PlayerStatGroups) bool {
	return p.Offense != nil || p.Defense != nil
}

// Derive builds the table of view for the roster. Players without season
// stats are left out; rows follow roster order unless the view has a sort
// column. Inputs are not modified.
func Derive(view View, roster []statsapi.TeamPlayer, season *statsapi.SeasonStatsResponse) Table {
	columns := Columns(view)
	table := Table{
		View:    view,
		Columns: columns,
		Rows:    []Row{},
		Legend:  LegendFor(view),
	}

	for _, player := range roster {
		groups, ok := season.Player(player.ID)
		if !ok || !HasSeasonStats(groups) {
			continue
		}

		row := Row{
			PlayerID: player.ID,
			Player:   PlayerDisplay(player),
			Number:   player.Number,
			Cells:    make([]Cell, len(columns)),
		}
		for i, col := range columns {
			row.Cells[i] = col.Render(groups)
		}
		table.Rows = append(table.Rows, row)
	}

	sortRows(table.Rows, columns)
	return table
}

// sortRows orders rows by the first column with a sort hint. Rows missing
// the value go last in either direction.
func sortRows(rows []Row, columns []Column) {
	idx := -1
	for i, c := range columns {
		if c.Sort != SortNone {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	desc := columns[idx].Sort == SortDesc
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].Cells[idx], rows[j].Cells[idx]
		if a.Present != b.Present {
			return a.Present
		}
		if desc {
			return a.Value > b.Value
		}
		return a.Value < b.Value
	})
}
