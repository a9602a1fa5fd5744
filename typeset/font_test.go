package typeset

import (
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func TestFontsFromBufferSingleFace(t *testing.T) {
	t.Parallel()
	fonts := FontsFromBuffer(goregular.TTF)
	if len(fonts) != 1 {
		t.Fatalf("expected 1 face, got %d", len(fonts))
	}
	info := fonts[0].Info()
	if info.Family != "Go" {
		t.Fatalf("unexpected family %q", info.Family)
	}
	if info.Variant != (Variant{Style: StyleNormal, Weight: WeightRegular}) {
		t.Fatalf("unexpected variant %s", info.Variant)
	}
	if info.Monospace {
		t.Fatalf("Go Regular reported as monospace")
	}
	if info.Outline != OutlineTrueType {
		t.Fatalf("unexpected outline %s", info.Outline)
	}
	if fonts[0].Index() != 0 {
		t.Fatalf("unexpected index %d", fonts[0].Index())
	}
}

func TestFontsFromBufferDetectsMonospace(t *testing.T) {
	t.Parallel()
	fonts := FontsFromBuffer(gomono.TTF)
	if len(fonts) != 1 {
		t.Fatalf("expected 1 face, got %d", len(fonts))
	}
	if !fonts[0].Info().Monospace {
		t.Fatalf("Go Mono not reported as monospace")
	}
}

func TestFontsFromBufferCollectionKeepsOrder(t *testing.T) {
	t.Parallel()
	ttc := buildCollection(t, gobold.TTF, gomono.TTF)
	fonts := FontsFromBuffer(ttc)
	if len(fonts) != 2 {
		t.Fatalf("expected 2 faces, got %d", len(fonts))
	}
	if got := fonts[0].Info(); got.Family != "Go" || got.Variant.Weight != WeightBold {
		t.Fatalf("face 0: unexpected %+v", got)
	}
	if got := fonts[1].Info(); got.Family != "Go Mono" || !got.Monospace {
		t.Fatalf("face 1: unexpected %+v", got)
	}
	for i, f := range fonts {
		if f.Index() != i {
			t.Fatalf("face %d reports index %d", i, f.Index())
		}
		standalone, err := sfnt.Parse(f.Data())
		if err != nil {
			t.Fatalf("face %d: extracted data does not parse: %v", i, err)
		}
		if standalone.NumGlyphs() != f.Face().NumGlyphs() {
			t.Fatalf("face %d: glyph count %d != %d", i, standalone.NumGlyphs(), f.Face().NumGlyphs())
		}
	}
}

func TestFontsFromBufferRejectsGarbage(t *testing.T) {
	t.Parallel()
	for _, data := range [][]byte{nil, []byte("not a font at all"), make([]byte, 64)} {
		if fonts := FontsFromBuffer(data); len(fonts) != 0 {
			t.Fatalf("decoded %d faces from garbage", len(fonts))
		}
	}
}

func TestNewFontIndexOutOfRange(t *testing.T) {
	t.Parallel()
	if _, err := NewFont(goregular.TTF, 1); err == nil {
		t.Fatalf("expected error for index 1 of a single font")
	}
	if _, err := NewFont(goregular.TTF, -1); err == nil {
		t.Fatalf("expected error for negative index")
	}
}

func TestParseVariant(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want Variant
	}{
		{"Regular", Variant{StyleNormal, WeightRegular}},
		{"Bold", Variant{StyleNormal, WeightBold}},
		{"Bold Italic", Variant{StyleItalic, WeightBold}},
		{"SemiBold", Variant{StyleNormal, WeightSemiBold}},
		{"Extra-Light Oblique", Variant{StyleOblique, WeightExtraLight}},
		{"Black", Variant{StyleNormal, WeightBlack}},
		{"Light Italic", Variant{StyleItalic, WeightLight}},
		{"", Variant{StyleNormal, WeightRegular}},
	}
	for _, tc := range tests {
		if got := parseVariant(tc.in); got != tc.want {
			t.Fatalf("parseVariant(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
