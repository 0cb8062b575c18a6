package report

import (
	"regexp"
	"strings"
)

var (
	customEmojiPattern = regexp.MustCompile(`<a?:\w+:\d+>`)
	roleMentionPattern = regexp.MustCompile(`<@&\d+>`)
	userMentionPattern = regexp.MustCompile(`<@!?\d+>`)
)

// Normalize strips source-platform markup from raw field text: custom
// emoji references, role and user mentions, and emphasis markers.
// Pure and total, never fails.
func Normalize(raw string) string {
	s := customEmojiPattern.ReplaceAllString(raw, "")
	s = roleMentionPattern.ReplaceAllString(s, "")
	s = userMentionPattern.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "*", "")

	return strings.TrimSpace(s)
}
