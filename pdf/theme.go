package pdf

import (
	"sort"
	"strings"
)

// RGB is a color with 0-255 components.
type RGB [3]int

// Styles groups the colors used on a page.
type Styles struct {
	// Background is painted over the whole page when PaintBackground is set.
	Background      RGB
	PaintBackground bool
	Text            RGB
	Heading         [6]RGB
	Link            RGB
	Code            RGB
	CodeBackground  RGB
	Quote           RGB
	QuoteBar        RGB
	Marker          RGB
	Rule            RGB
	PageNumber      RGB
}

// Theme provides named styles for PDF export.
type Theme interface {
	Name() string
	Styles() Styles
}

type theme struct {
	name   string
	styles Styles
}

func (t theme) Name() string   { return t.name }
func (t theme) Styles() Styles { return t.styles }

// NewTheme returns a Theme from a Styles definition.
func NewTheme(name string, styles Styles) Theme {
	return theme{name: name, styles: styles}
}

func headings(c RGB) [6]RGB {
	return [6]RGB{c, c, c, c, c, c}
}

var builtinThemes = map[string]Theme{
	"paper": theme{name: "paper", styles: Styles{
		Background:     RGB{255, 255, 255},
		Text:           RGB{33, 33, 33},
		Heading:        [6]RGB{{17, 17, 17}, {17, 17, 17}, {34, 34, 34}, {34, 34, 34}, {51, 51, 51}, {51, 51, 51}},
		Link:           RGB{0, 90, 180},
		Code:           RGB{50, 50, 50},
		CodeBackground: RGB{243, 243, 243},
		Quote:          RGB{85, 85, 85},
		QuoteBar:       RGB{200, 200, 200},
		Marker:         RGB{90, 90, 90},
		Rule:           RGB{190, 190, 190},
		PageNumber:     RGB{120, 120, 120},
	}},
	"ink": theme{name: "ink", styles: Styles{
		Background:      RGB{24, 24, 27},
		PaintBackground: true,
		Text:            RGB{220, 220, 220},
		Heading:         [6]RGB{{255, 196, 87}, {255, 196, 87}, {130, 200, 255}, {130, 200, 255}, {200, 200, 200}, {200, 200, 200}},
		Link:            RGB{120, 180, 255},
		Code:            RGB{190, 230, 160},
		CodeBackground:  RGB{40, 40, 46},
		Quote:           RGB{170, 170, 170},
		QuoteBar:        RGB{90, 90, 100},
		Marker:          RGB{255, 196, 87},
		Rule:            RGB{80, 80, 90},
		PageNumber:      RGB{140, 140, 140},
	}},
	"solarized-light": theme{name: "solarized-light", styles: Styles{
		Background:      RGB{253, 246, 227},
		PaintBackground: true,
		Text:            RGB{101, 123, 131},
		Heading:         [6]RGB{{203, 75, 22}, {181, 137, 0}, {38, 139, 210}, {42, 161, 152}, {133, 153, 0}, {108, 113, 196}},
		Link:            RGB{38, 139, 210},
		Code:            RGB{88, 110, 117},
		CodeBackground:  RGB{238, 232, 213},
		Quote:           RGB{147, 161, 161},
		QuoteBar:        RGB{211, 54, 130},
		Marker:          RGB{203, 75, 22},
		Rule:            RGB{147, 161, 161},
		PageNumber:      RGB{147, 161, 161},
	}},
	"gruvbox-dark": theme{name: "gruvbox-dark", styles: Styles{
		Background:      RGB{40, 40, 40},
		PaintBackground: true,
		Text:            RGB{235, 219, 178},
		Heading:         [6]RGB{{251, 73, 52}, {250, 189, 47}, {184, 187, 38}, {142, 192, 124}, {131, 165, 152}, {211, 134, 155}},
		Link:            RGB{131, 165, 152},
		Code:            RGB{254, 128, 25},
		CodeBackground:  RGB{60, 56, 54},
		Quote:           RGB{168, 153, 132},
		QuoteBar:        RGB{102, 92, 84},
		Marker:          RGB{250, 189, 47},
		Rule:            RGB{102, 92, 84},
		PageNumber:      RGB{146, 131, 116},
	}},
	"boring": theme{name: "boring", styles: Styles{
		Background:     RGB{255, 255, 255},
		Heading:        headings(RGB{}),
		CodeBackground: RGB{255, 255, 255},
		QuoteBar:       RGB{0, 0, 0},
		Rule:           RGB{0, 0, 0},
	}},
}

// AvailableThemes returns the names of built-in themes.
func AvailableThemes() []string {
	names := make([]string, 0, len(builtinThemes))
	for name := range builtinThemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a built-in theme by name.
func ThemeByName(name string) (Theme, bool) {
	if name == "" {
		return DefaultTheme(), true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	theme, ok := builtinThemes[normalized]
	return theme, ok
}

// DefaultTheme returns the default built-in theme.
func DefaultTheme() Theme {
	return builtinThemes["paper"]
}
