// Package pdfgolden renders PDFs to images with pdftoppm and compares the
// results in tests.
package pdfgolden

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

const (
	rasterDPI = 96
	// channelSlack is the largest difference, in 8-bit steps, between two
	// channels of what still counts as the same pixel.
	channelSlack = 2
)

var pageObject = regexp.MustCompile(`/Type\s*/Page\b`)

// PageCount returns the number of page objects in an uncompressed object
// table.
func PageCount(data []byte) int {
	return len(pageObject.FindAll(data, -1))
}

// Available reports whether pdftoppm is on PATH.
func Available() bool {
	_, err := exec.LookPath("pdftoppm")
	return err == nil
}

// Rasterize renders every page of data and returns the decoded pages in page
// order. Scratch files go to a fresh directory below dir.
func Rasterize(data []byte, dir string) ([]image.Image, error) {
	work, err := os.MkdirTemp(dir, "raster-")
	if err != nil {
		return nil, err
	}
	src := filepath.Join(work, "doc.pdf")
	if err := os.WriteFile(src, data, 0o644); err != nil {
		return nil, err
	}
	cmd := exec.Command("pdftoppm", "-png", "-r", strconv.Itoa(rasterDPI), src, filepath.Join(work, "page"))
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w\n%s", err, out)
	}
	// pdftoppm pads page numbers to a common width, so names sort in order.
	names, err := filepath.Glob(filepath.Join(work, "page-*.png"))
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.New("pdftoppm rendered no pages")
	}
	sort.Strings(names)
	pages := make([]image.Image, 0, len(names))
	for _, name := range names {
		img, err := decodePage(name)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", filepath.Base(name), err)
		}
		pages = append(pages, img)
	}
	return pages, nil
}

func decodePage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// Mismatch counts the pixels of got that differ from the pixel at the same
// offset in want by more than channelSlack in any channel. Images of
// different sizes are an error.
func Mismatch(got, want image.Image) (int, error) {
	gb, wb := got.Bounds(), want.Bounds()
	if gb.Size() != wb.Size() {
		return 0, fmt.Errorf("size %v, want %v", gb.Size(), wb.Size())
	}
	n := 0
	for dy := 0; dy < gb.Dy(); dy++ {
		for dx := 0; dx < gb.Dx(); dx++ {
			g := nrgba(got.At(gb.Min.X+dx, gb.Min.Y+dy))
			w := nrgba(want.At(wb.Min.X+dx, wb.Min.Y+dy))
			if !close8(g.R, w.R) || !close8(g.G, w.G) || !close8(g.B, w.B) || !close8(g.A, w.A) {
				n++
			}
		}
	}
	return n, nil
}

// Same returns an error describing how far got is from want, or nil when
// every pixel matches.
func Same(got, want image.Image) error {
	n, err := Mismatch(got, want)
	if err != nil {
		return err
	}
	if n > 0 {
		size := got.Bounds().Size()
		return fmt.Errorf("%d of %d pixels differ", n, size.X*size.Y)
	}
	return nil
}

// Near reports whether c is within channelSlack of the opaque color r, g, b.
func Near(c color.Color, r, g, b uint8) bool {
	p := nrgba(c)
	return close8(p.R, r) && close8(p.G, g) && close8(p.B, b)
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func close8(a, b uint8) bool {
	if a < b {
		a, b = b, a
	}
	return a-b <= channelSlack
}
