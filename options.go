package dooc

import (
	"github.com/hashicorp/hcl/v2"

	"pkt.systems/dooc/pdf"
	"pkt.systems/dooc/typeset"
)

// Option configures a compilation.
type Option func(*compileConfig)

type compileConfig struct {
	typeset typeset.Config
	pdf     pdf.Config
	warn    func(*hcl.Diagnostic)
}

func newCompileConfig(opts []Option) compileConfig {
	var cfg compileConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithPageSize selects the paper size, such as "A4" or "Letter".
func WithPageSize(name string) Option {
	return func(cfg *compileConfig) {
		cfg.pdf.PageSize = name
	}
}

// WithMargin sets the page margin in points.
func WithMargin(points float64) Option {
	return func(cfg *compileConfig) {
		cfg.pdf.Margin = points
	}
}

// WithFontSize sets the body font size in points.
func WithFontSize(points float64) Option {
	return func(cfg *compileConfig) {
		cfg.pdf.FontSize = points
	}
}

// WithLineHeight sets the line height as a multiple of the font size.
func WithLineHeight(factor float64) Option {
	return func(cfg *compileConfig) {
		cfg.pdf.LineHeight = factor
	}
}

// WithFamily selects the body font family by name.
func WithFamily(family string) Option {
	return func(cfg *compileConfig) {
		cfg.typeset.Family = family
	}
}

// WithMonoFamily selects the font family used for code.
func WithMonoFamily(family string) Option {
	return func(cfg *compileConfig) {
		cfg.typeset.MonoFamily = family
	}
}

// WithTheme sets the color theme.
func WithTheme(theme pdf.Theme) Option {
	return func(cfg *compileConfig) {
		cfg.pdf.Theme = theme
	}
}

// WithPageNumbers enables or disables page numbers in the footer.
func WithPageNumbers(enabled bool) Option {
	return func(cfg *compileConfig) {
		cfg.pdf.PageNumbers = enabled
	}
}

// WithWarningHandler receives every warning the engine reports. Warnings
// never fail a compilation.
func WithWarningHandler(fn func(*hcl.Diagnostic)) Option {
	return func(cfg *compileConfig) {
		cfg.warn = fn
	}
}
