package ui

import "strings"

// iconGlyphs maps icon identifiers used in option metadata to terminal glyphs.
var iconGlyphs = map[string]string{
	"database":       "⛁",
	"astradb":        "⛁",
	"collection":     "▤",
	"table":          "▦",
	"folder":         "▣",
	"file":           "▭",
	"bot":            "◍",
	"brain":          "✺",
	"cpu":            "▩",
	"cloud":          "☁",
	"globe":          "◎",
	"key":            "⚷",
	"lock":           "⚿",
	"user":           "☺",
	"star":           "★",
	"check":          "✓",
	"plus":           "+",
	"refreshccw":     "↻",
	"search":         "⌕",
	"circle":         "•",
	"chevronsupdown": "⇕",
	"openai":         "◉",
	"anthropic":      "◈",
	"google":         "◐",
	"nvidia":         "◆",
	"calculator":     "∑",
}

// iconGlyph returns the glyph for an icon identifier. Unknown identifiers
// render as a generic marker; an empty identifier renders nothing.
func iconGlyph(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	if g, ok := iconGlyphs[key]; ok {
		return g
	}
	return "◆"
}
