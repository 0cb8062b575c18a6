package pipeline

import (
	"strings"
	"time"
)

const (
	footerQuotePrefix = "> "
	timestampLayout   = "02/01/06 15.04"
)

// Footer renders the static promotional/contact block appended to
// every delivered stock report, closed by a freshly computed
// local-timezone timestamp.
type Footer struct {
	lines []string
	loc   *time.Location
	label string
}

func NewFooter(lines []string, loc *time.Location, label string) *Footer {
	return &Footer{
		lines: lines,
		loc:   loc,
		label: label,
	}
}

// Render produces the footer block for the given instant.
func (f *Footer) Render(now time.Time) string {
	var b strings.Builder

	for _, line := range f.lines {
		b.WriteString(footerQuotePrefix + line + "\n")
	}

	b.WriteString(footerQuotePrefix + "Last Update: " + now.In(f.loc).Format(timestampLayout) + " " + f.label)

	return b.String()
}
