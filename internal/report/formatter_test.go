package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestFormatter() *Formatter {
	return NewFormatter(NewRegistry(DefaultGlyphs()))
}

func TestFormatFields(t *testing.T) {
	tests := []struct {
		name         string
		notification Notification
		expected     string
	}{
		{
			name: "gear field comma separated",
			notification: Notification{
				Fields: []Field{{Name: "Gear Stock", Value: "Watering Can x1, Recall Wrench x2"}},
			},
			expected: "*⚙ Gear Stock*:\n- 🚿 Watering Can x1\n- 🔧 Recall Wrench x2",
		},
		{
			name: "seeds suffix appended after glyph lookup",
			notification: Notification{
				Fields: []Field{{Name: "Seeds Stock", Value: "Carrot x5"}},
			},
			expected: "*🌱 Seeds Stock*:\n- 🥕 Carrot Seeds x5",
		},
		{
			name: "egg field",
			notification: Notification{
				Fields: []Field{{Name: "Egg Stock", Value: "Bug Egg x1"}},
			},
			expected: "*🥚 Egg Stock*:\n- 🐣 Bug Egg x1",
		},
		{
			name: "unmatched field name becomes literal header",
			notification: Notification{
				Fields: []Field{{Name: "Mystery Box", Value: "Widget x3"}},
			},
			expected: "*Mystery Box*:\n- 🔹 Widget x3",
		},
		{
			name: "noise lines dropped without affecting siblings",
			notification: Notification{
				Fields: []Field{{Name: "Seeds Stock", Value: "Carrot x5\nrestocks in 5 minutes!\nMango x2"}},
			},
			expected: "*🌱 Seeds Stock*:\n- 🥕 Carrot Seeds x5\n- 🥭 Mango Seeds x2",
		},
		{
			name: "missing quantity kept empty",
			notification: Notification{
				Fields: []Field{{Name: "Gear Stock", Value: "Trowel x"}},
			},
			expected: "*⚙ Gear Stock*:\n- 🛠 Trowel x",
		},
		{
			name: "markup stripped before parsing",
			notification: Notification{
				Fields: []Field{{Name: "Seeds Stock", Value: "**:crn:** Corn x10"}},
			},
			expected: "*🌱 Seeds Stock*:\n- 🌽 Corn Seeds x10",
		},
		{
			name: "multiple fields separated by blank line",
			notification: Notification{
				Fields: []Field{
					{Name: "Seeds Stock", Value: "Carrot x5"},
					{Name: "Gear Stock", Value: "Trowel x1"},
				},
			},
			expected: "*🌱 Seeds Stock*:\n- 🥕 Carrot Seeds x5\n\n*⚙ Gear Stock*:\n- 🛠 Trowel x1",
		},
		{
			name:         "empty notification yields empty string",
			notification: Notification{},
			expected:     "",
		},
	}

	f := newTestFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, f.Format(tt.notification))
		})
	}
}

func TestFormatTitleAndDescription(t *testing.T) {
	f := newTestFormatter()

	n := Notification{
		Title:       "Weather Alert",
		Description: "**Heavy Rain** incoming",
	}

	assert.Equal(t, "🌤️ Weather Alert\n*Heavy Rain* incoming", f.Format(n))
}

func TestFormatDescriptionAboveFields(t *testing.T) {
	f := newTestFormatter()

	n := Notification{
		Description: "fresh stock",
		Fields:      []Field{{Name: "Gear Stock", Value: "Trowel x1"}},
	}

	assert.Equal(t, "fresh stock\n\n*⚙ Gear Stock*:\n- 🛠 Trowel x1", f.Format(n))
}

func TestFormatDeterministic(t *testing.T) {
	f := newTestFormatter()

	n := Notification{
		Title:       "Stock Update",
		Description: "**latest**",
		Fields: []Field{
			{Name: "Seeds Stock", Value: "Carrot x5\nMango x2"},
			{Name: "Gear Stock", Value: "Watering Can x1, Trowel x"},
		},
	}

	first := f.Format(n)
	second := f.Format(n)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}
