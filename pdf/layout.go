package pdf

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"pkt.systems/dooc/typeset"
)

const (
	headingSpaceBeforeMultiplier = 0.35
	headingSpaceAfterMultiplier  = 0.3
	paragraphSpacing             = 0.6
	listItemSpacing              = 0.2
	indentStep                   = 1.6
	markerGap                    = 0.5
	quoteBarWidth                = 2.0
	codePadding                  = 4.0
	ruleWidth                    = 0.6
)

// pageWriter lays blocks out top to bottom. top is the upper edge of the
// next line; text is drawn on a baseline derived from it.
type pageWriter struct {
	pdf    *gofpdf.Fpdf
	cfg    Config
	styles Styles
	fonts  fontTable

	pageW, pageH float64
	top          float64

	// current line
	x, left, right float64
	lineH, size    float64
	space          bool
	block          *typeset.Block

	lastStyle   pdfStyle
	styleSet    bool
	lastOutline int
}

func newPageWriter(pdf *gofpdf.Fpdf, cfg Config, fonts fontTable) *pageWriter {
	p := &pageWriter{
		pdf:         pdf,
		cfg:         cfg,
		styles:      cfg.Theme.Styles(),
		fonts:       fonts,
		lastOutline: -1,
	}
	p.pageW, p.pageH = pdf.GetPageSize()
	return p
}

func (p *pageWriter) addPage() {
	p.pdf.AddPage()
	p.top = p.cfg.Margin
	p.styleSet = false
}

func (p *pageWriter) bottom() float64 {
	return p.pageH - p.cfg.Margin
}

// ensure starts a new page unless h more points fit on the current one.
// A page that is still empty is kept.
func (p *pageWriter) ensure(h float64) {
	if p.top+h > p.bottom() && p.top > p.cfg.Margin {
		p.addPage()
	}
}

func (p *pageWriter) applyStyle(st pdfStyle) {
	if p.styleSet && p.lastStyle == st {
		return
	}
	f := p.fonts[st.role]
	p.pdf.SetFont(f.family, f.style, st.size)
	p.pdf.SetTextColor(st.color[0], st.color[1], st.color[2])
	p.lastStyle = st
	p.styleSet = true
}

func (p *pageWriter) bounds(depth int) (float64, float64) {
	left := p.cfg.Margin + float64(depth)*indentStep*p.cfg.FontSize
	right := p.pageW - p.cfg.Margin
	if right-left < p.cfg.FontSize*4 {
		left = right - p.cfg.FontSize*4
	}
	return left, right
}

func (p *pageWriter) baseline() float64 {
	return p.top + (p.lineH+p.size*0.7)/2
}

func (p *pageWriter) writeBlock(b *typeset.Block) error {
	switch b.Kind {
	case typeset.BlockHeading:
		p.heading(b)
	case typeset.BlockCode:
		p.code(b)
	case typeset.BlockImage:
		return p.image(b)
	case typeset.BlockRule:
		p.rule(b)
	default:
		color := p.styles.Text
		if b.Quote {
			color = p.styles.Quote
		}
		p.text(b, p.cfg.FontSize, roleRegular, color)
		spacing := paragraphSpacing
		if b.Depth > 0 && !b.Quote {
			spacing = listItemSpacing
		}
		p.top += p.cfg.FontSize * spacing
	}
	return nil
}

func (p *pageWriter) heading(b *typeset.Block) {
	level := min(max(b.Level, 1), 6)
	size := p.cfg.FontSize * p.cfg.HeadingScale[level-1]
	if p.top > p.cfg.Margin {
		p.top += size * headingSpaceBeforeMultiplier
	}
	p.ensure(size * p.cfg.LineHeight * 2.5)

	outline := level - 1
	if outline > p.lastOutline+1 {
		outline = p.lastOutline + 1
	}
	p.lastOutline = outline
	p.applyStyle(pdfStyle{role: roleBold, size: size, color: p.styles.Heading[level-1]})
	p.pdf.Bookmark(p.fonts.encode(roleBold, typeset.PlainText(b.Runs)), outline, p.top)

	p.text(b, size, roleBold, p.styles.Heading[level-1])
	p.top += size * headingSpaceAfterMultiplier
}

// text flows the runs of b between the block's margins, wrapping at spaces
// and breaking words that are wider than a line.
func (p *pageWriter) text(b *typeset.Block, size float64, base fontRole, color RGB) {
	p.block = b
	p.size = size
	p.lineH = size * p.cfg.LineHeight
	p.left, p.right = p.bounds(b.Depth)
	p.ensure(p.lineH)
	p.startLine()
	p.marker(b)

	for _, run := range b.Runs {
		if run.Text == "\n" {
			p.newLine()
			continue
		}
		st := pdfStyle{role: roleForRun(run.Style, base), size: size, color: color}
		if run.Style.Has(typeset.Code) {
			st.color = p.styles.Code
		}
		if run.Link != "" {
			st.color = p.styles.Link
		}
		for i, word := range strings.Split(run.Text, " ") {
			if i > 0 {
				p.space = true
			}
			if word != "" {
				p.word(word, st, run)
			}
		}
	}
	p.top += p.lineH
}

func (p *pageWriter) word(word string, st pdfStyle, run typeset.Run) {
	text := p.fonts.encode(st.role, word)
	if text == "" {
		return
	}
	p.applyStyle(st)
	w := p.pdf.GetStringWidth(text)
	gap := 0.0
	if p.space && p.x > p.left {
		gap = p.pdf.GetStringWidth(" ")
	}
	p.space = false
	if p.x > p.left && p.x+gap+w > p.right {
		p.newLine()
		gap = 0
	}
	if w > p.right-p.left {
		fits := func(s string) bool {
			return p.pdf.GetStringWidth(p.fonts.encode(st.role, s)) <= p.right-p.left
		}
		for i, piece := range splitRunesToWidth(word, fits) {
			if i > 0 {
				p.newLine()
			}
			piece = p.fonts.encode(st.role, piece)
			p.draw(piece, p.pdf.GetStringWidth(piece), st, run)
		}
		return
	}
	p.x += gap
	p.draw(text, w, st, run)
}

func (p *pageWriter) draw(text string, w float64, st pdfStyle, run typeset.Run) {
	y := p.baseline()
	if run.Style.Has(typeset.Code) {
		bg := p.styles.CodeBackground
		p.pdf.SetFillColor(bg[0], bg[1], bg[2])
		p.pdf.Rect(p.x-1, y-st.size*0.85, w+2, st.size*1.15, "F")
	}
	p.pdf.Text(p.x, y, text)
	if run.Link != "" {
		p.pdf.LinkString(p.x, y-st.size, w, st.size*1.2, run.Link)
		p.line(st.color, st.size/18, p.x, y+st.size*0.12, p.x+w)
	}
	if run.Style.Has(typeset.Strike) {
		p.line(st.color, st.size/16, p.x, y-st.size*0.3, p.x+w)
	}
	p.x += w
}

func (p *pageWriter) line(c RGB, width, x1, y, x2 float64) {
	p.pdf.SetDrawColor(c[0], c[1], c[2])
	p.pdf.SetLineWidth(width)
	p.pdf.Line(x1, y, x2, y)
}

func (p *pageWriter) newLine() {
	p.top += p.lineH
	if p.top+p.lineH > p.bottom() {
		p.addPage()
	}
	p.startLine()
}

// startLine resets the cursor and draws the quote bars of the line.
func (p *pageWriter) startLine() {
	p.x = p.left
	p.space = false
	if p.block == nil || !p.block.Quote {
		return
	}
	c := p.styles.QuoteBar
	p.pdf.SetFillColor(c[0], c[1], c[2])
	x := p.cfg.Margin + float64(p.block.Depth-1)*indentStep*p.cfg.FontSize + p.cfg.FontSize*0.4
	p.pdf.Rect(x, p.top, quoteBarWidth, p.lineH, "F")
}

// marker draws a list marker in the gutter left of the current line.
func (p *pageWriter) marker(b *typeset.Block) {
	if b.Marker == "" {
		return
	}
	st := pdfStyle{role: roleRegular, size: p.size, color: p.styles.Marker}
	text := p.fonts.encode(st.role, b.Marker)
	if text == "" {
		text = "-"
	}
	p.applyStyle(st)
	w := p.pdf.GetStringWidth(text)
	p.pdf.Text(p.left-w-p.cfg.FontSize*markerGap, p.baseline(), text)
}

func (p *pageWriter) code(b *typeset.Block) {
	size := p.cfg.FontSize * p.cfg.CodeScale
	st := pdfStyle{role: roleMono, size: size, color: p.styles.Code}
	p.block = b
	p.size = size
	p.lineH = size * p.cfg.LineHeight
	p.left, p.right = p.bounds(b.Depth)
	p.applyStyle(st)
	cols := 0
	if m := p.pdf.GetStringWidth("M"); m > 0 {
		cols = int(math.Floor((p.right - p.left - 2*codePadding) / m))
	}

	bg := p.styles.CodeBackground
	first := true
	for _, raw := range b.Lines {
		for _, line := range wrapCode(raw, cols) {
			p.ensure(p.lineH)
			p.pdf.SetFillColor(bg[0], bg[1], bg[2])
			p.pdf.Rect(p.left, p.top, p.right-p.left, p.lineH, "F")
			if first {
				p.marker(b)
				first = false
			}
			p.applyStyle(st)
			p.pdf.Text(p.left+codePadding, p.baseline(), p.fonts.encode(roleMono, line))
			p.top += p.lineH
		}
	}
	p.top += p.cfg.FontSize * paragraphSpacing
}

func (p *pageWriter) rule(b *typeset.Block) {
	left, right := p.bounds(b.Depth)
	p.ensure(p.cfg.FontSize)
	y := p.top + p.cfg.FontSize/2
	p.line(p.styles.Rule, ruleWidth, left, y, right)
	p.top += p.cfg.FontSize * (1 + paragraphSpacing)
}

// image draws b scaled to the text width, or to the page height when it is
// taller than a page.
func (p *pageWriter) image(b *typeset.Block) error {
	img := b.Image
	if img == nil {
		return nil
	}
	opts := gofpdf.ImageOptions{ImageType: img.Format}
	info := p.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
	if err := p.pdf.Error(); err != nil {
		return fmt.Errorf("image %s: %w", img.Name, err)
	}
	if info == nil {
		return fmt.Errorf("image %s: not registered", img.Name)
	}
	w, h := info.Extent()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("image %s: invalid dimensions", img.Name)
	}
	left, right := p.bounds(b.Depth)
	scale := math.Min(1, (right-left)/w)
	scale = math.Min(scale, (p.bottom()-p.cfg.Margin)/h)
	w *= scale
	h *= scale
	p.ensure(h)
	p.pdf.ImageOptions(img.Name, left, p.top, w, h, false, opts, 0, "")
	p.top += h + p.cfg.FontSize*paragraphSpacing
	return nil
}
