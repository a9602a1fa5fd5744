package typeset

import (
	"fmt"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Style is the slant of a font face.
type Style uint8

const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	default:
		return "normal"
	}
}

// Weight is the CSS-style weight of a face, 100 to 900.
type Weight uint16

const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightRegular    Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Variant is the style and weight of a face within its family.
type Variant struct {
	Style  Style
	Weight Weight
}

func (v Variant) String() string {
	return fmt.Sprintf("%s/%d", v.Style, v.Weight)
}

// Outline is the glyph outline format of a face.
type Outline uint8

const (
	OutlineUnknown Outline = iota
	OutlineTrueType
	OutlineCFF
)

func (o Outline) String() string {
	switch o {
	case OutlineTrueType:
		return "truetype"
	case OutlineCFF:
		return "cff"
	default:
		return "unknown"
	}
}

// FontInfo is the metadata the FontBook indexes.
type FontInfo struct {
	Family    string
	Variant   Variant
	Monospace bool
	Outline   Outline
}

// Font is one decoded face. Fonts are immutable and safe for concurrent use.
type Font struct {
	data  []byte
	index int
	face  *sfnt.Font
	info  FontInfo
}

// NewFont decodes face index of data. data may be a single font (TTF, OTF)
// or a collection (TTC, OTC).
func NewFont(data []byte, index int) (*Font, error) {
	if index < 0 {
		return nil, fmt.Errorf("typeset: negative font index %d", index)
	}
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		return nil, fmt.Errorf("typeset: decode font: %w", err)
	}
	if index >= coll.NumFonts() {
		return nil, fmt.Errorf("typeset: font index %d out of range (%d faces)", index, coll.NumFonts())
	}
	face, err := coll.Font(index)
	if err != nil {
		return nil, fmt.Errorf("typeset: decode face %d: %w", index, err)
	}
	raw, tables, err := extractFace(data, index)
	if err != nil {
		return nil, fmt.Errorf("typeset: extract face %d: %w", index, err)
	}
	info := readFontInfo(face)
	switch {
	case hasTable(tables, "glyf"):
		info.Outline = OutlineTrueType
	case hasTable(tables, "CFF "), hasTable(tables, "CFF2"):
		info.Outline = OutlineCFF
	}
	return &Font{data: raw, index: index, face: face, info: info}, nil
}

// FontsFromBuffer decodes every face in data by probing index 0, 1, 2, …
// until decoding fails. A buffer that is not a font yields no faces.
func FontsFromBuffer(data []byte) []*Font {
	var fonts []*Font
	for i := 0; ; i++ {
		f, err := NewFont(data, i)
		if err != nil {
			return fonts
		}
		fonts = append(fonts, f)
	}
}

// Info returns the face metadata.
func (f *Font) Info() FontInfo {
	return f.info
}

// Index returns the face index within the buffer the font was decoded from.
func (f *Font) Index() int {
	return f.index
}

// Data returns a standalone sfnt binary holding only this face. Callers must
// not modify it.
func (f *Font) Data() []byte {
	return f.data
}

// Face returns the parsed face for metric queries.
func (f *Font) Face() *sfnt.Font {
	return f.face
}

func (f *Font) String() string {
	return fmt.Sprintf("%s (%s)", f.info.Family, f.info.Variant)
}

func readFontInfo(face *sfnt.Font) FontInfo {
	var buf sfnt.Buffer
	family := firstName(face, &buf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
	subfamily := firstName(face, &buf, sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)
	return FontInfo{
		Family:    family,
		Variant:   parseVariant(subfamily),
		Monospace: isMonospace(face, &buf),
	}
}

func firstName(face *sfnt.Font, buf *sfnt.Buffer, ids ...sfnt.NameID) string {
	for _, id := range ids {
		name, err := face.Name(buf, id)
		if err == nil && strings.TrimSpace(name) != "" {
			return strings.TrimSpace(name)
		}
	}
	return ""
}

func parseVariant(subfamily string) Variant {
	s := strings.ToLower(subfamily)
	s = strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
	v := Variant{Style: StyleNormal, Weight: WeightRegular}
	switch {
	case strings.Contains(s, "italic"):
		v.Style = StyleItalic
	case strings.Contains(s, "oblique"):
		v.Style = StyleOblique
	}
	switch {
	case strings.Contains(s, "thin"), strings.Contains(s, "hairline"):
		v.Weight = WeightThin
	case strings.Contains(s, "extralight"), strings.Contains(s, "ultralight"):
		v.Weight = WeightExtraLight
	case strings.Contains(s, "semibold"), strings.Contains(s, "demibold"):
		v.Weight = WeightSemiBold
	case strings.Contains(s, "extrabold"), strings.Contains(s, "ultrabold"):
		v.Weight = WeightExtraBold
	case strings.Contains(s, "black"), strings.Contains(s, "heavy"):
		v.Weight = WeightBlack
	case strings.Contains(s, "bold"):
		v.Weight = WeightBold
	case strings.Contains(s, "medium"):
		v.Weight = WeightMedium
	case strings.Contains(s, "light"):
		v.Weight = WeightLight
	}
	return v
}

// isMonospace compares the advances of a few glyphs that differ in any
// proportional face.
func isMonospace(face *sfnt.Font, buf *sfnt.Buffer) bool {
	ppem := fixed.I(int(face.UnitsPerEm()))
	var want fixed.Int26_6
	for i, r := range []rune{'i', 'M', 'W', '.'} {
		idx, err := face.GlyphIndex(buf, r)
		if err != nil || idx == 0 {
			return false
		}
		adv, err := face.GlyphAdvance(buf, idx, ppem, font.HintingNone)
		if err != nil {
			return false
		}
		if i == 0 {
			want = adv
			continue
		}
		if adv != want {
			return false
		}
	}
	return true
}
