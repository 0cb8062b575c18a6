package report

import (
	"regexp"
	"strings"
)

const (
	seedsHeader = "*🌱 Seeds Stock*"
	gearHeader  = "*⚙ Gear Stock*"
	eggHeader   = "*🥚 Egg Stock*"

	seedsSuffix = " Seeds"
	titleGlyph  = "🌤️"
)

var (
	// entryPattern matches one stock entry line: a name of letters and
	// spaces followed by " x" and an optional quantity.
	entryPattern = regexp.MustCompile(`(?i)^([\w\s]+)\sx(\d+)?$`)

	linePrefixPattern = regexp.MustCompile(`^:\w+:\s*`)
	lineSplitPattern  = regexp.MustCompile(`[\n,\r]`)
	boldPattern       = regexp.MustCompile(`\*\*(.*?)\*\*`)
)

type stockEntry struct {
	name string
	qty  string
}

// Formatter renders structured notifications as plain-text stock
// reports. Stateless: formatting the same input twice yields an
// identical string.
type Formatter struct {
	registry *Registry
}

func NewFormatter(registry *Registry) *Formatter {
	return &Formatter{registry: registry}
}

// Format renders one notification. Fields are grouped under category
// headers with one line per parsed entry and a blank line between
// groups; lines that do not parse as stock entries are noise and are
// dropped silently. A notification with no fields, title, or
// description yields the empty string.
func (f *Formatter) Format(n Notification) string {
	var b strings.Builder

	for _, field := range n.Fields {
		f.writeField(&b, field)
	}

	out := b.String()
	if n.Title != "" || n.Description != "" {
		out = prependHeader(n, out)
	}

	return strings.TrimSpace(out)
}

func (f *Formatter) writeField(b *strings.Builder, field Field) {
	lower := strings.ToLower(field.Name)
	isSeeds := strings.Contains(lower, "seed")

	header := "*" + field.Name + "*"

	switch {
	case isSeeds:
		header = seedsHeader
	case strings.Contains(lower, "gear"):
		header = gearHeader
	case strings.Contains(lower, "egg"):
		header = eggHeader
	}

	b.WriteString(header)
	b.WriteString(":\n")

	for _, line := range splitEntryLines(Normalize(field.Value)) {
		entry, ok := parseEntry(line)
		if !ok {
			continue
		}

		// Glyph lookup happens on the canonical name, before the
		// display suffix is appended.
		glyph := f.registry.Glyph(entry.name)

		name := entry.name
		if isSeeds {
			name += seedsSuffix
		}

		b.WriteString("- " + glyph + " " + name + " x" + entry.qty + "\n")
	}

	b.WriteString("\n")
}

// splitEntryLines breaks a normalized field value into candidate entry
// lines, stripping leading emoji-token artifacts and blanks.
func splitEntryLines(value string) []string {
	parts := lineSplitPattern.Split(value, -1)

	lines := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(linePrefixPattern.ReplaceAllString(part, ""))
		if part != "" {
			lines = append(lines, part)
		}
	}

	return lines
}

func parseEntry(line string) (stockEntry, bool) {
	m := entryPattern.FindStringSubmatch(line)
	if m == nil {
		return stockEntry{}, false
	}

	return stockEntry{name: strings.TrimSpace(m[1]), qty: m[2]}, true
}

// prependHeader puts the title and description above the field groups.
// Double-emphasis markers in the description are downgraded to the
// destination platform's single-emphasis convention.
func prependHeader(n Notification, body string) string {
	var b strings.Builder

	if n.Title != "" {
		b.WriteString(titleGlyph + " " + n.Title + "\n")
	}

	b.WriteString(boldPattern.ReplaceAllString(n.Description, "*$1*"))
	b.WriteString("\n\n")
	b.WriteString(body)

	return b.String()
}
