package stats

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is the stat family a table shows
type Category string

const (
	Batting  Category = "batting"
	Pitching Category = "pitching"
	Fielding Category = "fielding"
)

// Subtype selects a view within a category
type Subtype string

const (
	Standard Subtype = "standard"
	Advanced Subtype = "advanced"
	Catching Subtype = "catching"
)

// View is a (category, subtype) pair; it keys column sets and legends
type View struct {
	Category Category `json:"category"`
	Subtype  Subtype  `json:"type"`
}

// DefaultView is what the season-stats page opens on
var DefaultView = View{Category: Batting, Subtype: Standard}

// NewView normalises the strings of a request. Empty values take the
// defaults; unknown values are kept so the table can fall back.
func NewView(category, subtype string) View {
	v := View{
		Category: Category(strings.ToLower(strings.TrimSpace(category))),
		Subtype:  Subtype(strings.ToLower(strings.TrimSpace(subtype))),
	}
	if v.Category == "" {
		v.Category = DefaultView.Category
	}
	if v.Subtype == "" {
		v.Subtype = DefaultView.Subtype
	}
	return v
}

// Supported reports whether the view has its own column set
func (v View) Supported() bool {
	_, ok := columnSets[v]
	return ok
}

// Label is the display name of the view, e.g. "Batting Standard"
func (v View) Label() string {
	return capitalize(string(v.Category)) + " " + capitalize(string(v.Subtype))
}

func (v View) String() string {
	return string(v.Category) + "/" + string(v.Subtype)
}

// Views lists every supported view in display order
func Views() []View {
	return []View{
		{Batting, Standard},
		{Batting, Advanced},
		{Pitching, Standard},
		{Pitching, Advanced},
		{Fielding, Standard},
		{Fielding, Catching},
	}
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
