package units

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// markup writes HTML and keeps the first write error.
type markup struct {
	w   io.Writer
	err error
}

func (m *markup) raw(s string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, s)
}

func (m *markup) text(s string) {
	m.raw(templ.EscapeString(s))
}

// elem writes <tag>text</tag> with escaped text.
func (m *markup) elem(tag, s string) {
	m.raw("<" + tag + ">")
	m.text(s)
	m.raw("</" + tag + ">")
}

func (m *markup) attr(name, value string) {
	m.raw(" " + name + `="`)
	m.text(value)
	m.raw(`"`)
}

// component renders body into a <section> tagged with the unit name.
func component(unit string, body func(ctx context.Context, m *markup)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		m := &markup{w: w}
		m.raw(`<section class="unit"`)
		m.attr("data-unit", unit)
		m.raw(">")
		body(ctx, m)
		m.raw("</section>")
		return m.err
	})
}

var printer = message.NewPrinter(language.English)

// money formats cents as dollars with grouping, e.g. $1,240.00.
func money(cents int64) string {
	return printer.Sprintf("$%.2f", float64(cents)/100)
}

// count formats an integer with grouping.
func count(n int) string {
	return printer.Sprintf("%d", n)
}

func percent(part, whole int) string {
	if whole <= 0 {
		return "0%"
	}
	return fmt.Sprintf("%.0f%%", float64(part)*100/float64(whole))
}

func clock(t time.Time) string {
	return t.Format("3:04 PM")
}

func day(t time.Time) string {
	return t.Format("Monday, January 2")
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
