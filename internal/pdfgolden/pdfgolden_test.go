package pdfgolden

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func TestPageCount(t *testing.T) {
	data := []byte("1 0 obj\n<</Type /Pages /Kids [3 0 R 4 0 R]>>\n3 0 obj\n<</Type /Page\n/Parent 1 0 R>>\n4 0 obj\n<</Type /Page\n>>")
	if got := PageCount(data); got != 2 {
		t.Fatalf("PageCount = %d, want 2", got)
	}
}

func filled(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestMismatchCountsPixelsBeyondSlack(t *testing.T) {
	white := filled(10, 10, color.White)
	near := filled(10, 10, color.RGBA{254, 253, 255, 255})
	if n, err := Mismatch(white, near); err != nil || n != 0 {
		t.Fatalf("near white: %d, %v", n, err)
	}

	spotted := filled(10, 10, color.White)
	spotted.Set(3, 4, color.Black)
	spotted.Set(9, 9, color.RGBA{255, 250, 255, 255})
	if n, _ := Mismatch(spotted, white); n != 2 {
		t.Fatalf("spotted: %d mismatched pixels, want 2", n)
	}
	if err := Same(spotted, white); err == nil {
		t.Fatalf("expected spotted image to differ")
	}

	// Offsets are compared, not absolute coordinates.
	shifted := image.NewRGBA(image.Rect(5, 5, 15, 15))
	for y := 5; y < 15; y++ {
		for x := 5; x < 15; x++ {
			shifted.Set(x, y, color.White)
		}
	}
	if err := Same(shifted, white); err != nil {
		t.Fatalf("shifted bounds: %v", err)
	}

	if _, err := Mismatch(filled(10, 9, color.White), white); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestNear(t *testing.T) {
	if !Near(color.RGBA{12, 34, 56, 255}, 10, 36, 56) {
		t.Fatalf("within slack should be near")
	}
	if Near(color.RGBA{12, 34, 56, 255}, 9, 34, 56) {
		t.Fatalf("three steps off should not be near")
	}
}

func TestRasterizeReturnsPagesInOrder(t *testing.T) {
	if !Available() {
		t.Skip("pdftoppm not found in PATH")
	}
	doc := gofpdf.New("P", "pt", "A6", "")
	doc.AddPage()
	doc.AddPage()
	doc.SetFillColor(0, 0, 0)
	doc.Rect(0, 0, 400, 600, "F")
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("output: %v", err)
	}
	pages, err := Rasterize(buf.Bytes(), t.TempDir())
	if err != nil {
		t.Fatalf("rasterize: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("rasterized %d pages, want 2", len(pages))
	}
	if c := pages[0].At(5, 5); !Near(c, 255, 255, 255) {
		t.Fatalf("page 1 corner = %v, want white", c)
	}
	if c := pages[1].At(5, 5); !Near(c, 0, 0, 0) {
		t.Fatalf("page 2 corner = %v, want black", c)
	}
}
