package typeset

import (
	"strings"
	"time"
)

// Document is the result of a compilation, ready for export.
type Document struct {
	Meta   Meta
	Blocks []Block
	Fonts  FontSet
	// Date is the world's date at compile time.
	Date time.Time
	// Markup is the expanded Markdown body, front matter removed.
	Markup string
}

// Meta is document metadata collected from front matter.
type Meta struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Lang     string
}

// FontSet holds the faces chosen for each text role. Any entry may be nil
// when the world has no matching face.
type FontSet struct {
	Regular    *Font
	Bold       *Font
	Italic     *Font
	BoldItalic *Font
	Mono       *Font
}

// BlockKind classifies a Block.
type BlockKind uint8

const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockCode
	BlockImage
	BlockRule
)

func (k BlockKind) String() string {
	switch k {
	case BlockHeading:
		return "heading"
	case BlockCode:
		return "code"
	case BlockImage:
		return "image"
	case BlockRule:
		return "rule"
	default:
		return "paragraph"
	}
}

// Block is a vertical unit of the document.
type Block struct {
	Kind BlockKind
	// Level is the heading level, 1 to 6.
	Level int
	// Depth is the list and quote nesting of the block.
	Depth int
	// Marker is the list marker shown before the first block of a list item.
	Marker string
	Quote  bool
	Runs   []Run
	// Lines holds the text of a code block.
	Lines []string
	Lang  string
	Image *Image
}

// RunStyle is a bit set of inline styles.
type RunStyle uint8

const (
	Strong RunStyle = 1 << iota
	Emphasis
	Code
	Strike
)

// Has reports whether all bits of flag are set.
func (s RunStyle) Has(flag RunStyle) bool {
	return s&flag == flag
}

// Run is a span of text with a single style. A Run whose Text is "\n" is a
// hard line break.
type Run struct {
	Text  string
	Style RunStyle
	Link  string
}

// Image is a decoded image ready for embedding.
type Image struct {
	// Name is the virtual path the image was loaded from.
	Name string
	Alt  string
	// Format is PNG, JPG or GIF.
	Format string
	Data   []byte
	Width  int
	Height int
}

// Text returns the plain text of the document, one block per line.
func (d *Document) Text() string {
	var b strings.Builder
	for _, block := range d.Blocks {
		switch block.Kind {
		case BlockCode:
			for _, line := range block.Lines {
				b.WriteString(line)
				b.WriteByte('\n')
			}
			continue
		case BlockImage:
			if block.Image != nil {
				b.WriteString(block.Image.Alt)
			}
		case BlockRule:
			b.WriteString("---")
		default:
			if block.Marker != "" {
				b.WriteString(block.Marker)
				b.WriteByte(' ')
			}
			for _, r := range block.Runs {
				b.WriteString(r.Text)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Outline returns the heading blocks in document order.
func (d *Document) Outline() []Block {
	var out []Block
	for _, block := range d.Blocks {
		if block.Kind == BlockHeading {
			out = append(out, block)
		}
	}
	return out
}

// PlainText concatenates the text of runs.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
