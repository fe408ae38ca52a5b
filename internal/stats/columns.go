package stats

import (
	"github.com/fortuna/dugout/internal/statsapi"
)

// SortDirection is the default ordering a column imposes on rows
type SortDirection string

const (
	SortNone SortDirection = ""
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Extractor reads one value from a player's stat groups. ok is false when
// the value is absent; computed values are always present.
type Extractor func(p statsapi.PlayerStatGroups) (v float64, ok bool)

// Column describes one derived metric of a table
type Column struct {
	Label    string        `json:"label"`
	Key      string        `json:"key"`
	Format   Format        `json:"format"`
	Decimals int           `json:"decimals,omitempty"`
	Sort     SortDirection `json:"sort,omitempty"`
	Value    Extractor     `json:"-"`
}

// Render extracts and formats the column for one player
func (c Column) Render(p statsapi.PlayerStatGroups) Cell {
	v, ok := c.Value(p)
	return Cell{
		Key:     c.Key,
		Value:   v,
		Present: ok,
		Text:    render(c.Format, c.Decimals, v, ok),
	}
}

func offense(p statsapi.PlayerStatGroups) statsapi.CountingStats  { return p.Offense }
func defense(p statsapi.PlayerStatGroups) statsapi.CountingStats  { return p.Defense }
func general(p statsapi.PlayerStatGroups) statsapi.CountingStats  { return p.General }
func pitching(p statsapi.PlayerStatGroups) statsapi.CountingStats { return p.Pitching }

type group func(p statsapi.PlayerStatGroups) statsapi.CountingStats

// field passes a raw stat through
func field(g group, code string) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		return g(p).Lookup(code)
	}
}

// firstNonZero returns the first present, non-zero value. A present zero is
// still reported as present when nothing else is.
func firstNonZero(extractors ...Extractor) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		anyPresent := false
		for _, e := range extractors {
			v, ok := e(p)
			if ok && v != 0 {
				return v, true
			}
			anyPresent = anyPresent || ok
		}
		return 0, anyPresent
	}
}

// orZero never reports absence
func orZero(e Extractor) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		v, _ := e(p)
		return v, true
	}
}

// serviceOr prefers the value the service sent and computes it otherwise
func serviceOr(e Extractor, computed Extractor) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		if v, ok := e(p); ok {
			return v, true
		}
		return computed(p)
	}
}

// sum adds fields, missing ones counting as 0
func sum(extractors ...Extractor) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		var total float64
		for _, e := range extractors {
			v, _ := e(p)
			total += v
		}
		return total, true
	}
}

// weighted multiplies a field by a constant
func weighted(e Extractor, w float64) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		v, _ := e(p)
		return v * w, true
	}
}

// difference is a - b with missing fields as 0
func difference(a, b Extractor) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		x, _ := a(p)
		y, _ := b(p)
		return x - y, true
	}
}

// ratio divides with a zero guard: a zero denominator yields 0
func ratio(num, den Extractor) Extractor {
	return func(p statsapi.PlayerStatGroups) (float64, bool) {
		n, _ := num(p)
		d, _ := den(p)
		return safeDiv(n, d), true
	}
}

// safeDiv performs division with zero check
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func integer(label, key string, value Extractor) Column {
	return Column{Label: label, Key: key, Format: FormatInteger, Value: value}
}

func fixed(label, key string, value Extractor) Column {
	return Column{Label: label, Key: key, Format: FormatDecimal, Decimals: DefaultDecimals, Value: value}
}

func percent(label, key string, value Extractor) Column {
	return Column{Label: label, Key: key, Format: FormatPct, Value: value}
}

func sorted(c Column, dir SortDirection) Column {
	c.Sort = dir
	return c
}

// Batting inputs shared by several computed columns
var (
	atBats     = field(offense, "ab")
	hits       = field(offense, "h")
	walks      = field(offense, "bb")
	hitByPitch = field(offense, "hbp")
	sacFlies   = field(offense, "shf")
	strikeouts = field(offense, "so")
	plateApps  = field(offense, "pa")

	totalBases = serviceOr(field(offense, "tb"), sum(
		field(offense, "1B"),
		weighted(field(offense, "2B"), 2),
		weighted(field(offense, "3B"), 3),
		weighted(field(offense, "hr"), 4),
	))

	battingAverage = serviceOr(field(offense, "avg"), ratio(hits, atBats))
	onBasePct      = serviceOr(field(offense, "obp"), ratio(
		sum(hits, walks, hitByPitch),
		sum(atBats, walks, hitByPitch, sacFlies),
	))
	sluggingPct = serviceOr(field(offense, "slg"), ratio(totalBases, atBats))
	onBasePlus  = serviceOr(field(offense, "ops"), sum(onBasePct, sluggingPct))

	gamesPlayed = firstNonZero(field(general, "gp"), field(offense, "gp"))
)

// Fielding inputs
var (
	assists = field(defense, "a")
	putouts = field(defense, "po")
	errs    = field(defense, "e")

	totalChances = sum(assists, putouts, errs)

	// no chances counts as a perfect 1.000
	fieldingPct Extractor = func(p statsapi.PlayerStatGroups) (float64, bool) {
		chances, _ := totalChances(p)
		if chances == 0 {
			return 1, true
		}
		made, _ := sum(assists, putouts)(p)
		return made / chances, true
	}

	stolenAllowed    = field(defense, "sb_allowed")
	caughtByCatcher  = field(defense, "cs_by_catcher")
	stealingAttempts = sum(stolenAllowed, caughtByCatcher)
)

var columnSets = map[View][]Column{
	{Batting, Standard}: {
		integer("G", "gp", gamesPlayed),
		integer("PA", "pa", plateApps),
		integer("AB", "ab", atBats),
		sorted(fixed("AVG", "avg", battingAverage), SortDesc),
		fixed("OBP", "obp", onBasePct),
		fixed("SLG", "slg", sluggingPct),
		fixed("OPS", "ops", onBasePlus),
		integer("H", "h", hits),
		integer("1B", "1B", field(offense, "1B")),
		integer("2B", "2B", field(offense, "2B")),
		integer("3B", "3B", field(offense, "3B")),
		integer("HR", "hr", field(offense, "hr")),
		integer("RBI", "rbi", field(offense, "rbi")),
		integer("R", "r", field(offense, "r")),
		integer("BB", "bb", walks),
		integer("SO", "so", strikeouts),
		integer("K-L", "kl", field(offense, "K-L")),
		integer("HBP", "hbp", hitByPitch),
		integer("SAC", "sac", field(offense, "shb")),
		integer("SF", "sf", sacFlies),
		integer("ROE", "roe", field(offense, "roe")),
		integer("FC", "fc", field(offense, "fc")),
		integer("SB", "sb", field(offense, "sb")),
		percent("SB%", "sb_pct", ratio(field(offense, "sb"), sum(field(offense, "sb"), field(offense, "cs")))),
		integer("CS", "cs", field(offense, "cs")),
		integer("PIK", "pik", orZero(firstNonZero(field(offense, "pik"), field(offense, "picked_off")))),
	},
	{Batting, Advanced}: {
		integer("QAB", "qab", field(offense, "qab")),
		fixed("QAB%", "qab_pct", ratio(field(offense, "qab"), plateApps)),
		fixed("PA/BB", "pa_bb", ratio(plateApps, walks)),
		fixed("BB/K", "bb_k", ratio(walks, strikeouts)),
		percent("C%", "contact_pct", ratio(difference(atBats, strikeouts), atBats)),
		integer("HHB", "hhb", field(offense, "hhb")),
		percent("LD%", "ld_pct", field(offense, "ld_pct")),
		percent("FB%", "fb_pct", field(offense, "fb_pct")),
		percent("GB%", "gb_pct", field(offense, "gb_pct")),
		fixed("BABIP", "babip", field(offense, "babip")),
		fixed("BA/RISP", "ba_risp", field(offense, "ba_risp")),
		integer("LOB", "lob", field(offense, "lob")),
		integer("2OUTRBI", "two_out_rbi", field(offense, "two_out_rbi")),
		integer("XBH", "xbh", sum(field(offense, "2B"), field(offense, "3B"), field(offense, "hr"))),
		integer("TB", "tb", totalBases),
		integer("PS", "ps", field(offense, "ps")),
		fixed("PS/PA", "ps_pa", ratio(field(offense, "ps"), plateApps)),
	},
	{Pitching, Standard}: {
		fixed("IP", "ip", field(pitching, "ip")),
		integer("GP", "gp", firstNonZero(field(pitching, "gp"), field(general, "gp"))),
		integer("GS", "gs", field(pitching, "gs")),
		integer("BF", "bf", field(pitching, "bf")),
		integer("#P", "pitches", field(pitching, "pitches")),
		integer("W", "w", field(pitching, "w")),
		integer("L", "l", field(pitching, "l")),
		integer("SV", "sv", field(pitching, "sv")),
		sorted(fixed("ERA", "era", field(pitching, "era")), SortAsc),
		fixed("WHIP", "whip", field(pitching, "whip")),
		integer("H", "h_allowed", field(pitching, "h")),
		integer("R", "r_allowed", field(pitching, "r")),
		integer("ER", "er", field(pitching, "er")),
		integer("BB", "bb_allowed", field(pitching, "bb")),
		integer("SO", "so_pitched", field(pitching, "so")),
		fixed("BAA", "baa", field(pitching, "baa")),
	},
	{Pitching, Advanced}: {
		fixed("P/IP", "p_ip", ratio(field(pitching, "pitches"), field(pitching, "ip"))),
		fixed("P/BF", "p_bf", ratio(field(pitching, "pitches"), field(pitching, "bf"))),
		fixed("FIP", "fip", field(pitching, "fip")),
		percent("S%", "strike_pct", field(pitching, "strike_pct")),
		fixed("K/BB", "k_bb", ratio(field(pitching, "so"), field(pitching, "bb"))),
		fixed("BABIP", "babip_against", field(pitching, "babip")),
	},
	{Fielding, Standard}: {
		integer("TC", "tc", totalChances),
		integer("A", "a", assists),
		integer("PO", "po", putouts),
		fixed("FPCT", "fpct", fieldingPct),
		integer("E", "e", errs),
		integer("DP", "dp", field(defense, "dp")),
		integer("TP", "tp", field(defense, "tp")),
	},
	{Fielding, Catching}: {
		fixed("INN", "inn_caught", field(defense, "inn_caught")),
		integer("PB", "pb", field(defense, "pb")),
		integer("SB", "sb_allowed_catcher", stolenAllowed),
		integer("SB-ATT", "sb_att_catcher", stealingAttempts),
		integer("CS", "cs_by_catcher", caughtByCatcher),
		percent("CS%", "cs_pct_catcher", ratio(caughtByCatcher, stealingAttempts)),
		integer("PIK", "pik_catcher", field(defense, "pik_catcher")),
		integer("CI", "ci", field(defense, "ci")),
	},
}

// defaultColumns is used for any view without its own column set
var defaultColumns = []Column{
	integer("G", "gp", gamesPlayed),
}

// Columns returns the column set of a view, falling back to games played.
// The returned slice must not be modified.
func Columns(v View) []Column {
	if cols, ok := columnSets[v]; ok {
		return cols
	}
	return defaultColumns
}
