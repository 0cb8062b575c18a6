package report

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "Carrot x5",
			expected: "Carrot x5",
		},
		{
			name:     "custom emoji token removed",
			input:    "<:carrot:123456789> Carrot x5",
			expected: "Carrot x5",
		},
		{
			name:     "animated emoji token removed",
			input:    "<a:spin:987654321> Corn x10",
			expected: "Corn x10",
		},
		{
			name:     "role mention removed",
			input:    "<@&111222333> restock soon",
			expected: "restock soon",
		},
		{
			name:     "user mention removed",
			input:    "<@444555666> ping",
			expected: "ping",
		},
		{
			name:     "nickname mention removed",
			input:    "<@!444555666> ping",
			expected: "ping",
		},
		{
			name:     "emphasis markers removed",
			input:    "**Watering Can** x1",
			expected: "Watering Can x1",
		},
		{
			name:     "whitespace trimmed",
			input:    "  Mango x2  ",
			expected: "Mango x2",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
