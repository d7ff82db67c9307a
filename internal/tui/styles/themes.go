package styles

// ThemeTokens names the color roles used by the scope picker and the CLI
// status lines.
type ThemeTokens struct {
	Text      string
	TextMuted string
	Accent    string
	Focus     string
	Selected  string
	Success   string
	Warning   string
	Error     string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Tokens ThemeTokens
}

// DefaultTheme suits dark terminals.
var DefaultTheme = Theme{
	Name: "default",
	Tokens: ThemeTokens{
		Text:      "#E6EDF3",
		TextMuted: "#8B9AAE",
		Accent:    "#5B8DEF",
		Focus:     "#7AA2F7",
		Selected:  "#3FB950",
		Success:   "#3FB950",
		Warning:   "#D29922",
		Error:     "#F85149",
	},
}

// HighContrastTheme uses saturated colors and pure white text.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Tokens: ThemeTokens{
		Text:      "#FFFFFF",
		TextMuted: "#C0C0C0",
		Accent:    "#00A2FF",
		Focus:     "#FFD400",
		Selected:  "#00FF5A",
		Success:   "#00FF5A",
		Warning:   "#FFB000",
		Error:     "#FF4040",
	},
}

// Themes lists available palettes by name.
var Themes = map[string]Theme{
	DefaultTheme.Name:      DefaultTheme,
	HighContrastTheme.Name: HighContrastTheme,
}
