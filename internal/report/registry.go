package report

// DefaultGlyph marks items without a configured glyph.
const DefaultGlyph = "🔹"

// Registry is an immutable mapping from canonical item name to a
// display glyph. Lookups for unknown names fall back to DefaultGlyph.
type Registry struct {
	glyphs map[string]string
}

// NewRegistry copies the given mapping into an immutable registry.
func NewRegistry(glyphs map[string]string) *Registry {
	own := make(map[string]string, len(glyphs))
	for name, glyph := range glyphs {
		own[name] = glyph
	}

	return &Registry{glyphs: own}
}

// Glyph returns the glyph for a canonical item name.
func (r *Registry) Glyph(name string) string {
	if glyph, ok := r.glyphs[name]; ok {
		return glyph
	}

	return DefaultGlyph
}

// DefaultGlyphs returns the built-in item glyph mapping. Callers may
// overlay per-deployment overrides before constructing a Registry.
func DefaultGlyphs() map[string]string {
	return map[string]string{
		// Seeds
		"Carrot": "🥕", "Strawberry": "🍓", "Blueberry": "🫐",
		"Orange Tulip": "🌷", "Tomato": "🍅", "Corn": "🌽",
		"Daffodil": "🌼", "Watermelon": "🍉", "Pumpkin": "🎃",
		"Apple": "🍎", "Bamboo": "🎋", "Coconut": "🥥",
		"Cactus": "🌵", "Dragon Fruit": "🌴", "Mango": "🥭",
		"Grape": "🍇", "Mushroom": "🍄", "Pepper": "🌶",
		"Cacao": "🌰", "Beanstalk": "🫛",

		// Gear
		"Watering Can": "🚿", "Trowel": "🛠", "Recall Wrench": "🔧",
		"Basic Sprinkler": "💧", "Advanced Sprinkler": "💧", "Godly Sprinkler": "💦",
		"Lightning Rod": "⚡", "Master Sprinkler": "💦",
		"Favorite Tool": "❤", "Harvest Tool": "🚜",

		// Eggs
		"Common Egg": "🥚", "Uncommon Egg": "🥚",
		"Rare Egg": "🍳", "Legendary Egg": "🍳",
		"Mythical Egg": "🐣", "Bug Egg": "🐣",
	}
}
