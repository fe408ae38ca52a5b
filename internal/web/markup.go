package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// markup writes HTML to w. The first write error sticks and later writes
// are skipped.
type markup struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newMarkup(ctx context.Context, w io.Writer) *markup {
	return &markup{ctx: ctx, w: w}
}

// raw writes trusted markup
func (m *markup) raw(parts ...string) {
	for _, p := range parts {
		if m.err != nil {
			return
		}
		_, m.err = io.WriteString(m.w, p)
	}
}

// text writes escaped text; it is also safe inside quoted attributes
func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

func (m *markup) render(c templ.Component) {
	if m.err != nil || c == nil {
		return
	}
	m.err = c.Render(m.ctx, m.w)
}
