package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"pkt.systems/dooc/typeset"
)

// Export renders doc to PDF bytes. Output is byte-identical for identical
// documents and configuration when doc.Date is set; a zero date leaves the
// timestamps to the clock.
func Export(doc *typeset.Document, cfg Config) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("pdf export: document is nil")
	}
	c := DefaultConfig()
	applyConfig(&c, cfg)
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("pdf export: %w", err)
	}

	pdf := gofpdf.New("P", "pt", c.PageSize, "")
	pdf.SetMargins(c.Margin, c.Margin, c.Margin)
	pdf.SetAutoPageBreak(false, c.Margin)
	pdf.SetCatalogSort(true)
	setMetadata(pdf, doc, c)

	fonts := registerFonts(pdf, doc.Fonts)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf export: font setup failed: %w", err)
	}
	regular := fonts[roleRegular]
	pdf.SetFont(regular.family, regular.style, c.FontSize)
	if charWidth := pdf.GetStringWidth("M"); math.IsNaN(charWidth) || charWidth <= 0 {
		return nil, fmt.Errorf("pdf export: invalid font metrics (charWidth=%v)", charWidth)
	}

	w := newPageWriter(pdf, c, fonts)
	styles := w.styles
	pdf.SetHeaderFunc(func() {
		if !styles.PaintBackground {
			return
		}
		bg := styles.Background
		pdf.SetFillColor(bg[0], bg[1], bg[2])
		pdf.Rect(0, 0, w.pageW, w.pageH, "F")
	})
	if c.PageNumbers {
		pdf.SetFooterFunc(func() {
			num := strconv.Itoa(pdf.PageNo())
			col := styles.PageNumber
			pdf.SetFont(regular.family, regular.style, c.FontSize*0.8)
			pdf.SetTextColor(col[0], col[1], col[2])
			pdf.Text((w.pageW-pdf.GetStringWidth(num))/2, w.pageH-c.Margin/2, num)
			w.styleSet = false
		})
	}

	w.addPage()
	for i := range doc.Blocks {
		if err := w.writeBlock(&doc.Blocks[i]); err != nil {
			return nil, fmt.Errorf("pdf export: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf export: output: %w", err)
	}
	return buf.Bytes(), nil
}

func setMetadata(pdf *gofpdf.Fpdf, doc *typeset.Document, c Config) {
	meta := doc.Meta
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if meta.Keywords != "" {
		pdf.SetKeywords(meta.Keywords, true)
	}
	pdf.SetCreator(c.Creator, true)
	if !doc.Date.IsZero() {
		pdf.SetCreationDate(doc.Date)
		pdf.SetModificationDate(doc.Date)
	}
}
