// Package recipient models destination-platform delivery targets and
// resolves group membership with a process-lifetime cache.
package recipient

// Kind distinguishes individual from group recipients.
type Kind int

const (
	KindIndividual Kind = iota
	KindGroup
)

func (k Kind) String() string {
	if k == KindGroup {
		return "group"
	}

	return "individual"
}

// Recipient is one configured delivery target.
type Recipient struct {
	ID   string
	Kind Kind
}

// ParseList builds the delivery list from the configured individual
// and group identifiers, individuals first, order preserved.
func ParseList(individuals, groups []string) []Recipient {
	list := make([]Recipient, 0, len(individuals)+len(groups))

	for _, id := range individuals {
		if id != "" {
			list = append(list, Recipient{ID: id, Kind: KindIndividual})
		}
	}

	for _, id := range groups {
		if id != "" {
			list = append(list, Recipient{ID: id, Kind: KindGroup})
		}
	}

	return list
}
