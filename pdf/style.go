package pdf

import (
	"strings"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"

	"pkt.systems/dooc/typeset"
)

type fontRole uint8

const (
	roleRegular fontRole = iota
	roleBold
	roleItalic
	roleBoldItalic
	roleMono
	roleCount
)

var roleFamilies = [roleCount]string{"body", "body-bold", "body-italic", "body-bolditalic", "mono"}

// face is a gofpdf family and style pair. Core faces need their text in
// Windows-1252.
type face struct {
	family string
	style  string
	utf8   bool
}

type fontTable [roleCount]face

type pdfStyle struct {
	role  fontRole
	size  float64
	color RGB
}

// registerFonts embeds the TrueType faces of set in role order and fills the
// remaining roles with fallbacks: a missing styled face borrows an embedded
// sibling, and a missing regular face uses the core Helvetica and Courier
// fonts.
func registerFonts(pdf *gofpdf.Fpdf, set typeset.FontSet) fontTable {
	var t fontTable
	var embedded [roleCount]bool
	for role, f := range [roleCount]*typeset.Font{set.Regular, set.Bold, set.Italic, set.BoldItalic, set.Mono} {
		if f == nil || f.Info().Outline != typeset.OutlineTrueType {
			continue
		}
		pdf.AddUTF8FontFromBytes(roleFamilies[role], "", privateCopy(f.Data()))
		t[role] = face{family: roleFamilies[role], utf8: true}
		embedded[role] = true
	}

	if !embedded[roleRegular] {
		t[roleRegular] = face{family: "Helvetica"}
	}
	fallback := func(role fontRole, core string, siblings ...fontRole) {
		if embedded[role] {
			return
		}
		for _, s := range siblings {
			if embedded[s] {
				t[role] = t[s]
				return
			}
		}
		t[role] = face{family: "Helvetica", style: core}
	}
	fallback(roleBold, "B", roleRegular)
	fallback(roleItalic, "I", roleRegular)
	fallback(roleBoldItalic, "BI", roleBold, roleItalic, roleRegular)
	if !embedded[roleMono] {
		t[roleMono] = face{family: "Courier"}
	}
	return t
}

// privateCopy returns data in a buffer of its own. gofpdf pads tables by
// appending to slices of the font it was given, which writes into whatever
// follows them; a shared buffer would change between exports.
func privateCopy(data []byte) []byte {
	return append(make([]byte, 0, len(data)), data...)
}

func roleForRun(style typeset.RunStyle, base fontRole) fontRole {
	if style.Has(typeset.Code) {
		return roleMono
	}
	bold := base == roleBold || style.Has(typeset.Strong)
	italic := style.Has(typeset.Emphasis)
	switch {
	case bold && italic:
		return roleBoldItalic
	case bold:
		return roleBold
	case italic:
		return roleItalic
	default:
		return roleRegular
	}
}

// encode prepares text for the face of role. Runes a core face cannot show
// are dropped.
func (t fontTable) encode(role fontRole, text string) string {
	if t[role].utf8 {
		return text
	}
	return toWindows1252(text)
}

func toWindows1252(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\u00a0':
			b.WriteByte(' ')
			continue
		case '\u2011':
			b.WriteByte('-')
			continue
		}
		if c, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteByte(c)
		}
	}
	return b.String()
}
