// Package report turns structured source-platform notifications into
// normalized plain-text stock reports for the destination platform.
package report

// Field is one labeled block of line-delimited stock entries inside a
// notification.
type Field struct {
	Name  string
	Value string
}

// Notification is one structured inbound unit: an optional title and
// description plus an ordered sequence of fields. It arrives as an
// opaque payload from the source platform and is read-only here.
type Notification struct {
	Title       string
	Description string
	Fields      []Field
}
