package theme

import "github.com/charmbracelet/lipgloss"

func ac(dark, light string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: dark, Light: light}
}

// TokyoNight is the default palette.
var TokyoNight = Palette{
	PrimaryColor:             ac("#82aaff", "#2e7de9"),
	SecondaryColor:           ac("#c099ff", "#9854f1"),
	AccentColor:              ac("#ff966c", "#b15c00"),
	ErrorColor:               ac("#ff757f", "#f52a65"),
	WarningColor:             ac("#ff966c", "#b15c00"),
	SuccessColor:             ac("#c3e88d", "#587539"),
	InfoColor:                ac("#7dcfff", "#0db9d7"),
	TextColor:                ac("#c8d3f5", "#3760bf"),
	TextMutedColor:           ac("#636da6", "#848cb5"),
	TextEmphasizedColor:      ac("#ffc777", "#8c6c3e"),
	BackgroundColor:          ac("#222436", "#e1e2e7"),
	BackgroundSecondaryColor: ac("#2f334d", "#c8c9ce"),
	BackgroundDarkerColor:    ac("#1e2030", "#d5d6db"),
	BorderNormalColor:        ac("#3b4261", "#a8aecb"),
	BorderFocusedColor:       ac("#82aaff", "#2e7de9"),
	BorderDimColor:           ac("#292e42", "#c8c9ce"),
}

// Catppuccin is the Mocha (dark) / Latte (light) palette.
var Catppuccin = Palette{
	PrimaryColor:             ac("#89b4fa", "#1e66f5"),
	SecondaryColor:           ac("#cba6f7", "#8839ef"),
	AccentColor:              ac("#fab387", "#fe640b"),
	ErrorColor:               ac("#f38ba8", "#d20f39"),
	WarningColor:             ac("#fab387", "#fe640b"),
	SuccessColor:             ac("#a6e3a1", "#40a02b"),
	InfoColor:                ac("#89b4fa", "#1e66f5"),
	TextColor:                ac("#cdd6f4", "#4c4f69"),
	TextMutedColor:           ac("#6c7086", "#9ca0b0"),
	TextEmphasizedColor:      ac("#f5e0dc", "#dc8a78"),
	BackgroundColor:          ac("#1e1e2e", "#eff1f5"),
	BackgroundSecondaryColor: ac("#313244", "#e6e9ef"),
	BackgroundDarkerColor:    ac("#181825", "#dce0e8"),
	BorderNormalColor:        ac("#6c7086", "#9ca0b0"),
	BorderFocusedColor:       ac("#89b4fa", "#1e66f5"),
	BorderDimColor:           ac("#45475a", "#ccd0da"),
}

// Gruvbox is the retro groove palette.
var Gruvbox = Palette{
	PrimaryColor:             ac("#83a598", "#076678"),
	SecondaryColor:           ac("#d3869b", "#8f3f71"),
	AccentColor:              ac("#fabd2f", "#b57614"),
	ErrorColor:               ac("#fb4934", "#9d0006"),
	WarningColor:             ac("#fe8019", "#af3a03"),
	SuccessColor:             ac("#b8bb26", "#79740e"),
	InfoColor:                ac("#83a598", "#076678"),
	TextColor:                ac("#ebdbb2", "#3c3836"),
	TextMutedColor:           ac("#a89984", "#7c6f64"),
	TextEmphasizedColor:      ac("#fabd2f", "#b57614"),
	BackgroundColor:          ac("#282828", "#fbf1c7"),
	BackgroundSecondaryColor: ac("#504945", "#ebdbb2"),
	BackgroundDarkerColor:    ac("#1d2021", "#d5c4a1"),
	BorderNormalColor:        ac("#504945", "#bdae93"),
	BorderFocusedColor:       ac("#83a598", "#076678"),
	BorderDimColor:           ac("#3c3836", "#d5c4a1"),
}

func init() {
	RegisterTheme("tokyonight", TokyoNight)
	RegisterTheme("catppuccin", Catppuccin)
	RegisterTheme("gruvbox", Gruvbox)
}
