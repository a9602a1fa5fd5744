package typeset

import (
	"github.com/hashicorp/hcl/v2"
	"golang.org/x/text/unicode/norm"
)

// Config selects the font families a compilation uses. Empty names fall back
// to the first proportional and monospace families of the world's book.
type Config struct {
	Family     string
	MonoFamily string
}

// Compile turns the world's main source into a Document. The returned
// diagnostics may hold warnings even on success; when they hold an error the
// document is nil.
func Compile(w World, cfg Config) (*Document, hcl.Diagnostics) {
	src, err := w.Source(w.Main())
	if err != nil {
		return nil, hcl.Diagnostics{errorDiagnostic("Failed to load main source", err)}
	}

	text, diags := expand(w, src)
	if diags.HasErrors() {
		return nil, diags
	}
	text = norm.NFC.String(text)

	meta, body, fmDiags := splitFrontMatter(text)
	diags = append(diags, fmDiags...)

	blocks, markupDiags := parseMarkup(w, body)
	diags = append(diags, markupDiags...)

	fonts, fontDiags := selectFonts(w, cfg)
	diags = append(diags, fontDiags...)

	if diags.HasErrors() {
		return nil, diags
	}
	date, _ := w.Today(nil)
	return &Document{
		Meta:   meta,
		Blocks: blocks,
		Fonts:  fonts,
		Date:   date,
		Markup: body,
	}, diags
}
