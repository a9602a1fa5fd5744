package pdf

import (
	"image"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"pkt.systems/dooc/internal/pdfgolden"
	"pkt.systems/dooc/typeset"
)

func TestExportRasterIsRepeatable(t *testing.T) {
	if !pdfgolden.Available() {
		t.Skip("pdftoppm not found in PATH")
	}
	doc := sampleDocument()
	doc.Fonts = typeset.FontSet{
		Regular: typeset.FontsFromBuffer(goregular.TTF)[0],
		Bold:    typeset.FontsFromBuffer(gobold.TTF)[0],
		Italic:  typeset.FontsFromBuffer(goitalic.TTF)[0],
		Mono:    typeset.FontsFromBuffer(gomono.TTF)[0],
	}
	for _, name := range AvailableThemes() {
		t.Run(name, func(t *testing.T) {
			theme, _ := ThemeByName(name)
			cfg := Config{Theme: theme, PageNumbers: true}
			dir := t.TempDir()
			var renders [][]image.Image
			for i := 0; i < 2; i++ {
				data, err := Export(doc, cfg)
				if err != nil {
					t.Fatalf("export %d: %v", i, err)
				}
				pages, err := pdfgolden.Rasterize(data, dir)
				if err != nil {
					t.Fatalf("rasterize %d: %v", i, err)
				}
				renders = append(renders, pages)
			}
			got, want := renders[1], renders[0]
			if len(got) != len(want) {
				t.Fatalf("page count differs: %d vs %d", len(got), len(want))
			}
			bg := theme.Styles().Background
			for i := range got {
				if err := pdfgolden.Same(got[i], want[i]); err != nil {
					t.Fatalf("page %d: %v", i+1, err)
				}
				corner := want[i].Bounds().Min
				if c := want[i].At(corner.X+2, corner.Y+2); !pdfgolden.Near(c, uint8(bg[0]), uint8(bg[1]), uint8(bg[2])) {
					t.Fatalf("page %d corner = %v, want background %v", i+1, c, bg)
				}
			}
		})
	}
}
