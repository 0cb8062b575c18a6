package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFooterRender(t *testing.T) {
	f := NewFooter([]string{"🔗 Social Media:", "https://example.com"}, time.UTC, "UTC")

	now := time.Date(2026, time.August, 29, 14, 5, 0, 0, time.UTC)

	expected := "> 🔗 Social Media:\n" +
		"> https://example.com\n" +
		"> Last Update: 29/08/26 14.05 UTC"

	assert.Equal(t, expected, f.Render(now))
}

func TestFooterRenderLocalTimezone(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		t.Skipf("timezone database unavailable: %v", err)
	}

	f := NewFooter(nil, jakarta, "Asia/Jakarta (WIB)")

	// 07:00 UTC is 14:00 in Jakarta (UTC+7).
	now := time.Date(2026, time.August, 29, 7, 0, 0, 0, time.UTC)

	assert.Equal(t, "> Last Update: 29/08/26 14.00 Asia/Jakarta (WIB)", f.Render(now))
}
