package web

import (
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/fortuna/dugout/internal/schedule"
	"github.com/fortuna/dugout/internal/seasons"
	"github.com/fortuna/dugout/internal/service"
	"github.com/fortuna/dugout/internal/stats"
	"github.com/fortuna/dugout/internal/statsapi"
)

// Tab names of the team pages
const (
	TabSchedule    = "schedule"
	TabSeasonStats = "season-stats"
	TabTeamInfo    = "team-info"
)

var tabs = []struct{ key, label string }{
	{TabSchedule, "Schedule"},
	{TabSeasonStats, "Season Stats"},
	{TabTeamInfo, "Team Info"},
}

func teamURL(teamID, tab string) string {
	return "/teams/" + url.PathEscape(teamID) + "/" + tab
}

// Layout wraps body in the page chrome
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>`)
		m.text(title)
		m.raw(`</title><link rel="stylesheet" href="/static/dugout.css"></head><body>`,
			`<header class="site-header"><a href="/teams" class="brand">Dugout</a></header>`,
			`<main>`)
		m.render(body)
		m.raw(`</main></body></html>`)
		return m.err
	})
}

// ErrorPage shows a failed page load
func ErrorPage(message string) templ.Component {
	return Layout("Error", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<div class="error-state"><h1>Something went wrong</h1><p class="error-message">`)
		m.text(message)
		m.raw(`</p><a href="/teams">Back to teams</a></div>`)
		return m.err
	}))
}

func avatar(m *markup, team service.TeamSummary) {
	m.raw(`<span class="avatar">`)
	if team.AvatarURL != "" {
		m.raw(`<img src="`)
		m.text(team.AvatarURL)
		m.raw(`" alt="" loading="lazy" onerror="this.remove()">`)
	}
	m.raw(`<span class="initials">`)
	m.text(team.Initials)
	m.raw(`</span></span>`)
}

// TeamsPage lists teams grouped by season year with a search form
func TeamsPage(dir *service.TeamDirectory, params statsapi.SearchParams) templ.Component {
	return Layout("Teams", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		m.raw(`<h1>Teams</h1>`)
		searchForm(m, params)

		if dir == nil || dir.Total == 0 {
			m.raw(`<p class="empty">No teams found</p>`)
			return m.err
		}

		m.raw(`<p class="total">`, strconv.Itoa(dir.Total), ` teams</p>`)
		for _, group := range dir.Seasons {
			m.raw(`<section class="season" data-season="`)
			m.text(group.Label)
			m.raw(`"><h2>`)
			m.text(group.Label)
			m.raw(`</h2><ul class="team-list">`)
			for _, team := range group.Teams {
				m.raw(`<li class="team-card"><a href="`)
				m.text(teamURL(team.ID, TabSchedule))
				m.raw(`">`)
				avatar(m, team)
				m.raw(`<span class="team-name">`)
				m.text(team.Name)
				m.raw(`</span><span class="record">`)
				m.text(team.Record)
				m.raw(`</span></a></li>`)
			}
			m.raw(`</ul></section>`)
		}
		return m.err
	}))
}

func searchForm(m *markup, params statsapi.SearchParams) {
	m.raw(`<form class="team-search" method="get" action="/teams">`,
		`<input type="search" name="city" placeholder="City" value="`)
	m.text(params.City)
	m.raw(`"><input type="text" name="state" placeholder="State" value="`)
	m.text(params.State)
	m.raw(`"><select name="season"><option value="">Any season</option>`)
	for _, season := range []statsapi.SeasonName{statsapi.SeasonSpring, statsapi.SeasonSummer, statsapi.SeasonFall, statsapi.SeasonWinter} {
		m.raw(`<option value="`, string(season), `"`)
		if params.Season == string(season) {
			m.raw(` selected`)
		}
		m.raw(`>`)
		m.text(seasons.FormatSeasonName(season))
		m.raw(`</option>`)
	}
	m.raw(`</select><input type="number" name="year" placeholder="Year" value="`)
	if params.Year != 0 {
		m.raw(strconv.Itoa(params.Year))
	}
	m.raw(`"><button type="submit">Search</button></form>`)
}

// teamHeader renders the team banner and the tab bar
func teamHeader(m *markup, team service.TeamSummary, active string) {
	m.raw(`<header class="team-header">`)
	avatar(m, team)
	m.raw(`<div><h1 class="team-name">`)
	m.text(team.Name)
	m.raw(`</h1><p class="team-meta"><span class="season-label">`)
	m.text(team.SeasonLabel)
	m.raw(`</span> <span class="record">`)
	m.text(team.Record)
	m.raw(`</span></p></div></header><nav class="tabs">`)
	for _, tab := range tabs {
		m.raw(`<a href="`)
		m.text(teamURL(team.ID, tab.key))
		m.raw(`" class="tab`)
		if tab.key == active {
			m.raw(` active`)
		}
		m.raw(`">`, tab.label, `</a>`)
	}
	m.raw(`</nav>`)
}

func staffList(m *markup, staff []string) {
	if len(staff) == 0 {
		return
	}
	m.raw(`<section class="staff"><h3>Staff</h3><ul>`)
	for _, member := range staff {
		m.raw(`<li>`)
		m.text(member)
		m.raw(`</li>`)
	}
	m.raw(`</ul></section>`)
}

// SchedulePage shows a team's games grouped by month and day
func SchedulePage(view *service.ScheduleView) templ.Component {
	return Layout(view.Team.Name+" Schedule", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		teamHeader(m, view.Team, TabSchedule)

		next := schedule.Descending
		toggle := "Newest first"
		if view.Order == schedule.Descending {
			next = schedule.Ascending
			toggle = "Oldest first"
		}
		m.raw(`<a class="order-toggle" href="`)
		m.text(teamURL(view.Team.ID, TabSchedule) + "?order=" + next.String())
		m.raw(`">`, toggle, `</a>`)

		if len(view.Months) == 0 {
			m.raw(`<p class="empty">No games scheduled</p>`)
			return m.err
		}

		for _, month := range view.Months {
			m.raw(`<section class="month"><h2>`)
			m.text(month.Month)
			m.raw(`</h2>`)
			for _, day := range month.Days {
				m.raw(`<div class="day" data-day="`)
				m.text(day.Day)
				m.raw(`"><div class="date">`)
				if day.DayOfMonth > 0 {
					m.raw(`<span class="weekday">`)
					m.text(day.Weekday)
					m.raw(`</span><span class="day-of-month">`, strconv.Itoa(day.DayOfMonth), `</span>`)
				} else {
					m.raw(`<span class="day-of-month">`, schedule.TBD, `</span>`)
				}
				m.raw(`</div><ul class="games">`)
				for _, row := range day.Rows {
					gameRow(m, row)
				}
				m.raw(`</ul></div>`)
			}
			m.raw(`</section>`)
		}
		return m.err
	}))
}

func gameRow(m *markup, row schedule.Row) {
	m.raw(`<li class="game outcome-`, string(row.Outcome), `" data-schedule-id="`)
	m.text(row.ScheduleID)
	m.raw(`"><span class="opponent">`)
	m.text(row.Opponent)
	m.raw(`</span><span class="venue">`)
	m.text(row.Venue)
	m.raw(`</span><span class="result">`)
	m.text(row.Label)
	m.raw(`</span></li>`)
}

// SeasonStatsPage shows the derived stats table with its view selector and legend
func SeasonStatsPage(view *service.SeasonStatsView) templ.Component {
	return Layout(view.Team.Name+" Season Stats", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		teamHeader(m, view.Team, TabSeasonStats)

		table := view.Table
		m.raw(`<nav class="stat-views">`)
		for _, v := range stats.Views() {
			m.raw(`<a href="`)
			m.text(teamURL(view.Team.ID, TabSeasonStats) + "?category=" + string(v.Category) + "&type=" + string(v.Subtype))
			m.raw(`" class="stat-view`)
			if v == table.View {
				m.raw(` active`)
			}
			m.raw(`">`)
			m.text(v.Label())
			m.raw(`</a>`)
		}
		m.raw(`</nav>`)

		if len(table.Rows) == 0 {
			m.raw(`<p class="empty">No stats available</p>`)
		} else {
			statsTable(m, table)
		}

		m.raw(`<section class="legend"><h3>`)
		m.text(table.Legend.Title)
		m.raw(`</h3><dl>`)
		for _, e := range table.Legend.Entries {
			m.raw(`<dt>`)
			m.text(e.Abbrev)
			m.raw(`</dt><dd>`)
			m.text(e.Meaning)
			m.raw(`</dd>`)
		}
		m.raw(`</dl></section>`)
		return m.err
	}))
}

func statsTable(m *markup, table stats.Table) {
	m.raw(`<table class="season-stats"><thead><tr>`)
	for _, h := range table.Headers() {
		m.raw(`<th>`)
		m.text(h)
		m.raw(`</th>`)
	}
	m.raw(`</tr></thead><tbody>`)
	for _, row := range table.Rows {
		m.raw(`<tr data-player-id="`)
		m.text(row.PlayerID)
		m.raw(`"><th scope="row" class="player">`)
		m.text(row.Player)
		m.raw(`</th>`)
		for _, cell := range row.Cells {
			m.raw(`<td data-key="`)
			m.text(cell.Key)
			m.raw(`">`)
			m.text(cell.Text)
			m.raw(`</td>`)
		}
		m.raw(`</tr>`)
	}
	m.raw(`</tbody></table>`)
}

// TeamInfoPage shows the team details and its roster
func TeamInfoPage(view *service.RosterView) templ.Component {
	return Layout(view.Team.Name+" Team Info", templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := newMarkup(ctx, w)
		teamHeader(m, view.Team, TabTeamInfo)

		team := view.Team
		m.raw(`<dl class="team-details">`)
		detail(m, "Sport", team.Sport)
		detail(m, "Season", team.SeasonLabel)
		detail(m, "Age Group", team.AgeGroup)
		detail(m, "Location", joinNonEmpty(team.City, team.State))
		detail(m, "Record", team.Record)
		m.raw(`</dl>`)
		staffList(m, team.Staff)
		m.raw(`<h2>Roster</h2>`)

		if len(view.Players) == 0 {
			m.raw(`<p class="empty">No players on the roster</p>`)
			return m.err
		}

		m.raw(`<ul class="roster">`)
		for _, p := range view.Players {
			m.raw(`<li class="player" data-player-id="`)
			m.text(p.ID)
			m.raw(`"><span class="initials">`)
			m.text(p.Initials)
			m.raw(`</span><span class="name">`)
			m.text(p.Name)
			m.raw(`</span>`)
			if p.Number != "" {
				m.raw(`<span class="number">#`)
				m.text(p.Number)
				m.raw(`</span>`)
			}
			if p.Handedness != "" {
				m.raw(`<span class="handedness">`)
				m.text(p.Handedness)
				m.raw(`</span>`)
			}
			m.raw(`</li>`)
		}
		m.raw(`</ul>`)
		return m.err
	}))
}

func detail(m *markup, label, value string) {
	if value == "" {
		return
	}
	m.raw(`<dt>`, label, `</dt><dd>`)
	m.text(value)
	m.raw(`</dd>`)
}

func joinNonEmpty(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}
