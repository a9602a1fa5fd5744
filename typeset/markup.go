package typeset

import (
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

const bulletMarker = "•"

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
)

// converter flattens a goldmark tree into blocks. Nesting of lists and
// quotes is kept as a depth on each block.
type converter struct {
	w      World
	source []byte
	blocks []Block
	diags  hcl.Diagnostics

	depth  int
	quote  bool
	marker string

	proto   Block
	pending []Run
}

func parseMarkup(w World, body string) ([]Block, hcl.Diagnostics) {
	c := &converter{w: w, source: []byte(body)}
	root := markdown.Parser().Parse(text.NewReader(c.source))
	c.blocksOf(root)
	return c.blocks, c.diags
}

func (c *converter) blocksOf(parent ast.Node) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		c.block(n)
	}
}

func (c *converter) block(n ast.Node) {
	switch n := n.(type) {
	case *ast.Heading:
		c.inlineBlock(Block{Kind: BlockHeading, Level: n.Level}, n)
	case *ast.Paragraph, *ast.TextBlock:
		c.inlineBlock(Block{Kind: BlockParagraph}, n)
	case *ast.ThematicBreak:
		c.emit(Block{Kind: BlockRule})
	case *ast.FencedCodeBlock:
		c.emit(Block{Kind: BlockCode, Lines: c.lines(n), Lang: string(n.Language(c.source))})
	case *ast.CodeBlock:
		c.emit(Block{Kind: BlockCode, Lines: c.lines(n)})
	case *ast.Blockquote:
		quote := c.quote
		c.quote = true
		c.depth++
		c.blocksOf(n)
		c.depth--
		c.quote = quote
	case *ast.List:
		c.list(n)
	case *ast.HTMLBlock:
		c.diags = append(c.diags, warningDiagnostic("Raw HTML ignored", "HTML blocks are not rendered to PDF."))
	default:
		c.blocksOf(n)
	}
}

func (c *converter) list(n *ast.List) {
	// An item opening with a nested list keeps its own marker on a line of
	// its own.
	if c.marker != "" {
		c.emit(Block{Kind: BlockParagraph})
	}
	c.depth++
	num := n.Start
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		if n.IsOrdered() {
			c.marker = strconv.Itoa(num) + string(n.Marker)
			num++
		} else {
			c.marker = bulletMarker
		}
		c.blocksOf(item)
		c.marker = ""
	}
	c.depth--
}

// emit appends b at the current nesting. The first block of a list item
// takes the item's marker.
func (c *converter) emit(b Block) {
	b.Depth = c.depth
	b.Quote = c.quote
	if c.marker != "" {
		b.Marker = c.marker
		c.marker = ""
	}
	c.blocks = append(c.blocks, b)
}

func (c *converter) inlineBlock(proto Block, n ast.Node) {
	c.proto = proto
	c.pending = c.pending[:0]
	c.inline(n, 0, "")
	c.flush()
}

// flush emits the runs gathered so far as one block of the current kind.
// Blocks holding only whitespace are dropped.
func (c *converter) flush() {
	runs := trimRuns(c.pending)
	c.pending = nil
	if len(runs) == 0 {
		return
	}
	b := c.proto
	b.Runs = runs
	c.emit(b)
}

func (c *converter) inline(n ast.Node, style RunStyle, link string) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			c.addRun(string(child.Segment.Value(c.source)), style, link)
			switch {
			case child.HardLineBreak():
				c.addRun("\n", style, link)
			case child.SoftLineBreak():
				c.addRun(" ", style, link)
			}
		case *ast.String:
			c.addRun(string(child.Value), style, link)
		case *ast.CodeSpan:
			c.addRun(strings.ReplaceAll(c.plain(child), "\n", " "), style|Code, link)
		case *ast.Emphasis:
			s := Emphasis
			if child.Level >= 2 {
				s = Strong
			}
			c.inline(child, style|s, link)
		case *east.Strikethrough:
			c.inline(child, style|Strike, link)
		case *ast.Link:
			c.inline(child, style, string(child.Destination))
		case *ast.AutoLink:
			url := string(child.URL(c.source))
			if child.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
				url = "mailto:" + url
			}
			c.addRun(string(child.Label(c.source)), style, url)
		case *ast.Image:
			c.image(child, style, link)
		case *ast.RawHTML:
			c.diags = append(c.diags, warningDiagnostic("Raw HTML ignored", "Inline HTML is not rendered to PDF."))
		default:
			c.inline(child, style, link)
		}
	}
}

// image splits the current block around a local image. Remote images keep
// their alt text inline.
func (c *converter) image(n *ast.Image, style RunStyle, link string) {
	dest := string(n.Destination)
	alt := c.plain(n)
	if isRemote(dest) {
		c.diags = append(c.diags, warningDiagnostic("Remote image skipped", dest+" is not a virtual file; showing its alt text."))
		c.addRun(alt, style, link)
		return
	}
	img, diag := loadImage(c.w, dest, alt)
	if diag != nil {
		c.diags = append(c.diags, diag)
		return
	}
	c.flush()
	c.emit(Block{Kind: BlockImage, Image: img})
}

func (c *converter) addRun(s string, style RunStyle, link string) {
	if s == "" {
		return
	}
	if n := len(c.pending); n > 0 {
		last := &c.pending[n-1]
		if last.Style == style && last.Link == link && last.Text != "\n" && s != "\n" {
			last.Text += s
			return
		}
	}
	c.pending = append(c.pending, Run{Text: s, Style: style, Link: link})
}

// plain returns the concatenated text below n.
func (c *converter) plain(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := node.(type) {
		case *ast.Text:
			b.Write(node.Segment.Value(c.source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func (c *converter) lines(n ast.Node) []string {
	segs := n.Lines()
	out := make([]string, 0, segs.Len())
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		line := string(seg.Value(c.source))
		out = append(out, strings.TrimRight(line, "\r\n"))
	}
	return out
}

// trimRuns drops leading and trailing whitespace of a block. The result
// shares no storage with runs.
func trimRuns(runs []Run) []Run {
	out := make([]Run, 0, len(runs))
	for _, r := range runs {
		if len(out) == 0 {
			if r.Text == "\n" {
				continue
			}
			r.Text = strings.TrimLeft(r.Text, " \t")
			if r.Text == "" {
				continue
			}
		}
		out = append(out, r)
	}
	for len(out) > 0 {
		last := &out[len(out)-1]
		if last.Text == "\n" {
			out = out[:len(out)-1]
			continue
		}
		last.Text = strings.TrimRight(last.Text, " \t")
		if last.Text == "" {
			out = out[:len(out)-1]
			continue
		}
		break
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isRemote(dest string) bool {
	return strings.Contains(dest, "://") || strings.HasPrefix(dest, "data:")
}
