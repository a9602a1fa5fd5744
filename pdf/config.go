package pdf

import (
	"fmt"
	"strings"
)

// Config holds PDF export settings. Zero fields take their value from
// DefaultConfig.
type Config struct {
	PageSize     string
	Margin       float64
	FontSize     float64
	LineHeight   float64
	HeadingScale [6]float64
	CodeScale    float64
	PageNumbers  bool
	Theme        Theme
	Creator      string
}

// DefaultConfig returns a baseline configuration.
func DefaultConfig() Config {
	return Config{
		PageSize:   "A4",
		Margin:     56,
		FontSize:   11,
		LineHeight: 1.4,
		HeadingScale: [6]float64{
			1.9,
			1.6,
			1.3,
			1.1,
			1.0,
			1.0,
		},
		CodeScale: 0.9,
		Theme:     DefaultTheme(),
		Creator:   "dooc",
	}
}

var pageSizes = map[string]struct{}{
	"a1": {}, "a2": {}, "a3": {}, "a4": {}, "a5": {}, "a6": {},
	"letter": {}, "legal": {}, "tabloid": {},
}

// PageSizes returns the accepted page size names.
func PageSizes() []string {
	return []string{"A1", "A2", "A3", "A4", "A5", "A6", "Letter", "Legal", "Tabloid"}
}

func applyConfig(dst *Config, src Config) {
	if src.PageSize != "" {
		dst.PageSize = src.PageSize
	}
	if src.Margin > 0 {
		dst.Margin = src.Margin
	}
	if src.FontSize > 0 {
		dst.FontSize = src.FontSize
	}
	if src.LineHeight > 0 {
		dst.LineHeight = src.LineHeight
	}
	if src.HeadingScale != [6]float64{} {
		dst.HeadingScale = src.HeadingScale
	}
	if src.CodeScale > 0 {
		dst.CodeScale = src.CodeScale
	}
	if src.PageNumbers {
		dst.PageNumbers = true
	}
	if src.Theme != nil {
		dst.Theme = src.Theme
	}
	if src.Creator != "" {
		dst.Creator = src.Creator
	}
}

func (c Config) validate() error {
	if _, ok := pageSizes[strings.ToLower(strings.TrimSpace(c.PageSize))]; !ok {
		return fmt.Errorf("unknown page size %q", c.PageSize)
	}
	if c.FontSize > 200 {
		return fmt.Errorf("font size %.1f too large", c.FontSize)
	}
	for i, scale := range c.HeadingScale {
		if scale <= 0 {
			return fmt.Errorf("heading scale %d must be positive", i+1)
		}
	}
	return nil
}
