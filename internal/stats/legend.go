package stats

// LegendEntry explains one column abbreviation
type LegendEntry struct {
	Abbrev  string `json:"abbrev"`
	Meaning string `json:"meaning"`
}

// Legend is the static abbreviation key shown under a table
type Legend struct {
	Title   string        `json:"title"`
	Entries []LegendEntry `json:"entries"`
}

var legends = map[View][]LegendEntry{
	{Batting, Standard}: {
		{"G", "Games played"},
		{"PA", "Plate appearances"},
		{"AB", "At bats"},
		{"AVG", "Batting average"},
		{"OBP", "On-base percentage"},
		{"SLG", "Slugging percentage"},
		{"OPS", "On-base percentage plus slugging percentage"},
		{"H", "Hits"},
		{"1B", "Singles"},
		{"2B", "Doubles"},
		{"3B", "Triples"},
		{"HR", "Home runs"},
		{"RBI", "Runs batted in"},
		{"R", "Runs scored"},
		{"BB", "Base on balls (walks)"},
		{"SO", "Strikeouts"},
		{"K-L", "Strikeouts looking"},
		{"HBP", "Hit by pitch"},
		{"SAC", "Sacrifice hits & bunts"},
		{"SF", "Sacrifice flies"},
		{"ROE", "Reached on error"},
		{"FC", "Hit into fielder's choice"},
		{"SB", "Stolen bases"},
		{"SB%", "Stolen base percentage"},
		{"CS", "Caught stealing"},
		{"PIK", "Picked off"},
	},
	{Batting, Advanced}: {
		{"QAB", "Quality at bats (Any one of: 3 pitches after 2 strikes, 6+ pitch ABs, extra-base hit, hard-hit ball, walk, sac bunt, or sac fly)"},
		{"QAB%", "Quality at bats per plate appearance"},
		{"PA/BB", "Plate appearances per walk"},
		{"BB/K", "Walks per strikeout"},
		{"C%", "Contact percentage/Contact rate: (AB - K) / AB"},
		{"HHB", "Hard hit balls (Total line drives and hard ground balls)"},
		{"LD%", "Line drive percentage"},
		{"FB%", "Fly ball percentage"},
		{"GB%", "Ground ball percentage"},
		{"BABIP", "Batting average on balls in play"},
		{"BA/RISP", "Batting average with runners in scoring position"},
		{"LOB", "Runners left on base"},
		{"2OUTRBI", "2-out RBI"},
		{"XBH", "Extra-base hits"},
		{"TB", "Total bases"},
		{"PS", "Pitches seen"},
		{"PS/PA", "Pitches seen per plate appearance"},
	},
	{Pitching, Standard}: {
		{"IP", "Innings pitched"},
		{"GP", "Games pitched"},
		{"GS", "Games started"},
		{"BF", "Total batters faced"},
		{"#P", "Total pitches"},
		{"W", "Wins"},
		{"L", "Losses"},
		{"SV", "Saves"},
		{"ERA", "Earned run average"},
		{"WHIP", "Walks plus hits per innings pitched"},
		{"H", "Hits allowed"},
		{"R", "Runs allowed"},
		{"ER", "Earned runs allowed"},
		{"BB", "Base on balls (walks)"},
		{"SO", "Strikeouts"},
		{"BAA", "Opponent batting average"},
	},
	{Pitching, Advanced}: {
		{"P/IP", "Pitches per inning"},
		{"P/BF", "Pitches per batter faced"},
		{"FIP", "Fielding Independent Pitching"},
		{"S%", "Strike percentage"},
		{"K/BB", "Strikeouts per walk"},
		{"BABIP", "Opponent batting average on balls in play"},
	},
	{Fielding, Standard}: {
		{"TC", "Total Chances"},
		{"A", "Assists"},
		{"PO", "Putouts"},
		{"FPCT", "Fielding Percentage"},
		{"E", "Errors"},
		{"DP", "Double Plays"},
		{"TP", "Triple Plays"},
	},
	{Fielding, Catching}: {
		{"INN", "Innings played as catcher"},
		{"PB", "Passed balls allowed"},
		{"SB", "Stolen bases allowed"},
		{"SB-ATT", "Stolen bases - Stealing attempts"},
		{"CS", "Runners caught stealing"},
		{"CS%", "Runners caught stealing percentage"},
		{"PIK", "Runners picked off"},
		{"CI", "Batter advances on catcher's interference"},
	},
}

var defaultLegend = []LegendEntry{
	{"G", "Games played"},
	{"PA", "Plate appearances"},
	{"AB", "At bats"},
}

// LegendFor returns the abbreviation key of a view. Views without their
// own key get the games/plate appearances/at bats entries.
func LegendFor(v View) Legend {
	entries, ok := legends[v]
	if !ok {
		entries = defaultLegend
	}
	return Legend{
		Title:   capitalize(string(v.Category)) + " - " + capitalize(string(v.Subtype)) + " Statistics Abbreviations",
		Entries: entries,
	}
}
