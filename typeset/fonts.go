package typeset

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// selectFonts picks the faces for each text role from the world's book. A
// role left without a suitable face stays nil; the exporter falls back for
// it.
func selectFonts(w World, cfg Config) (FontSet, hcl.Diagnostics) {
	book := w.Book()
	var diags hcl.Diagnostics
	body := resolveFamily(book, cfg.Family, false, &diags)
	mono := resolveFamily(book, cfg.MonoFamily, true, &diags)
	if mono == "" {
		mono = body
	}

	pick := func(family string, want Variant, accept func(FontInfo) bool) *Font {
		if family == "" {
			return nil
		}
		i, ok := book.Select(family, want)
		if !ok {
			return nil
		}
		if info, _ := book.Info(i); !accept(info) {
			return nil
		}
		f, ok := w.Font(i)
		if !ok {
			return nil
		}
		return f
	}
	anyFace := func(FontInfo) bool { return true }
	bold := func(info FontInfo) bool { return info.Variant.Weight >= WeightSemiBold }
	italic := func(info FontInfo) bool { return info.Variant.Style != StyleNormal }
	boldItalic := func(info FontInfo) bool { return bold(info) && italic(info) }

	return FontSet{
		Regular:    pick(body, Variant{Style: StyleNormal, Weight: WeightRegular}, anyFace),
		Bold:       pick(body, Variant{Style: StyleNormal, Weight: WeightBold}, bold),
		Italic:     pick(body, Variant{Style: StyleItalic, Weight: WeightRegular}, italic),
		BoldItalic: pick(body, Variant{Style: StyleItalic, Weight: WeightBold}, boldItalic),
		Mono:       pick(mono, Variant{Style: StyleNormal, Weight: WeightRegular}, anyFace),
	}, diags
}

func resolveFamily(book *FontBook, family string, monospace bool, diags *hcl.Diagnostics) string {
	if family != "" {
		if book.HasFamily(family) {
			return family
		}
		*diags = append(*diags, warningDiagnostic("Unknown font family",
			fmt.Sprintf("No font in the world belongs to family %q; using the default.", family)))
	}
	name, _ := book.DefaultFamily(monospace)
	return name
}
