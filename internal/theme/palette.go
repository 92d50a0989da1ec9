package theme

// Palette is the colour set a front end renders a preference with.
type Palette struct {
	Background       string
	Text             string
	InputBackground  string
	InputPlaceholder string
	ButtonBackground string
	ButtonText       string
	ErrorText        string
}

var palettes = map[Preference]Palette{
	Light: {
		Background:       "#fff",
		Text:             "#000",
		InputBackground:  "#eee",
		InputPlaceholder: "#aaa",
		ButtonBackground: "#ddd",
		ButtonText:       "#000",
		ErrorText:        "#f00",
	},
	Dark: {
		Background:       "#000",
		Text:             "#fff",
		InputBackground:  "#333",
		InputPlaceholder: "#888",
		ButtonBackground: "#444",
		ButtonText:       "#fff",
		ErrorText:        "#f00",
	},
}

// PaletteFor returns the palette for p. Unknown values get the light palette.
func PaletteFor(p Preference) Palette {
	if pal, ok := palettes[p]; ok {
		return pal
	}
	return palettes[Light]
}
