package roles

// Embed colours for the default categories.
const (
	colorBlurple = 0x5865F2
	colorGreen   = 0x2ECC71
	colorGold    = 0xF1C40F
	colorPurple  = 0x9B59B6
	colorTeal    = 0x1ABC9C
)

// DefaultCategories returns the self-service role categories offered in the roles channel.
func DefaultCategories() []Category {
	return []Category{
		{
			Name:       "gender",
			Title:      "Gender",
			Footer:     "React to get your gender role.",
			Color:      colorBlurple,
			Capitalize: true,
			Bindings: []Binding{
				{Emoji: "🎀", Role: "female"},
				{Emoji: "👨🏻", Role: "male"},
			},
		},
		{
			Name:   "age",
			Title:  "Age",
			Footer: "React to get your age group role.",
			Color:  colorGreen,
			Bindings: []Binding{
				{Emoji: "🔞", Role: "18-21"},
				{Emoji: "🎓", Role: "22-24"},
				{Emoji: "💼", Role: "25-29"},
				{Emoji: "🎂", Role: "30+"},
			},
		},
		{
			Name:       "continent",
			Title:      "Continent",
			Footer:     "React to get your continent role.",
			Color:      colorGold,
			Capitalize: true,
			Bindings: []Binding{
				{Emoji: "🌍", Role: "africa"},
				{Emoji: "🌏", Role: "asia"},
				{Emoji: "🇪🇺", Role: "europe"},
				{Emoji: "🇺🇸", Role: "north america"},
				{Emoji: "🇧🇷", Role: "south america"},
				{Emoji: "🌊", Role: "oceania"},
			},
		},
		{
			Name:   "dm_status",
			Title:  "DM Status",
			Footer: "React to set your DM status.",
			Color:  colorPurple,
			Bindings: []Binding{
				{Emoji: "💌", Role: "DMs open"},
				{Emoji: "⚠️", Role: "DMs ask"},
				{Emoji: "🚫", Role: "DMs closed"},
			},
		},
		{
			Name:   "color",
			Title:  "Color",
			Footer: "React to set your display color.",
			Color:  colorTeal,
			Bindings: []Binding{
				{Emoji: "💚", Role: "green"},
				{Emoji: "💛", Role: "yellow"},
				{Emoji: "💙", Role: "blue"},
				{Emoji: "❤️", Role: "red"},
				{Emoji: "💜", Role: "purple"},
				{Emoji: "🧡", Role: "orange"},
			},
		},
	}
}

// DefaultTable builds the table from DefaultCategories.
func DefaultTable() *Table {
	table, err := NewTable(DefaultCategories()...)
	if err != nil {
		panic(err)
	}

	return table
}
