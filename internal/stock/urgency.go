package stock

import "strings"

// Classifier decides whether a finished report warrants mass-mention
// delivery based on a configured high-value keyword list.
type Classifier struct {
	keywords []string
}

func NewClassifier(keywords []string) *Classifier {
	lowered := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}

	return &Classifier{keywords: lowered}
}

// IsUrgent reports whether any high-value keyword appears in text.
// Case-insensitive substring match with no word-boundary enforcement:
// a keyword inside a longer unrelated word still counts.
func (c *Classifier) IsUrgent(text string) bool {
	lowered := strings.ToLower(text)

	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}

	return false
}
