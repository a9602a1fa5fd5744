package typeset

import "strings"

// FontBook indexes the metadata of a font collection. Indices in the book
// match the positions of the fonts it was built from.
type FontBook struct {
	infos []FontInfo
}

// NewFontBook builds a book over fonts.
func NewFontBook(fonts []*Font) *FontBook {
	infos := make([]FontInfo, len(fonts))
	for i, f := range fonts {
		infos[i] = f.Info()
	}
	return &FontBook{infos: infos}
}

// Len returns the number of faces in the book.
func (b *FontBook) Len() int {
	return len(b.infos)
}

// Info returns the metadata of face i.
func (b *FontBook) Info(i int) (FontInfo, bool) {
	if i < 0 || i >= len(b.infos) {
		return FontInfo{}, false
	}
	return b.infos[i], true
}

// Families returns the family names in order of first appearance.
func (b *FontBook) Families() []string {
	seen := make(map[string]struct{}, len(b.infos))
	var out []string
	for _, info := range b.infos {
		key := strings.ToLower(info.Family)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, info.Family)
	}
	return out
}

// HasFamily reports whether any face belongs to family (case-insensitive).
func (b *FontBook) HasFamily(family string) bool {
	for _, info := range b.infos {
		if strings.EqualFold(info.Family, family) {
			return true
		}
	}
	return false
}

// Select returns the index of the face in family closest to v. Style
// mismatches weigh more than any weight difference; ties go to the lower
// index.
func (b *FontBook) Select(family string, v Variant) (int, bool) {
	best, bestScore := -1, 0
	for i, info := range b.infos {
		if !strings.EqualFold(info.Family, family) {
			continue
		}
		score := variantDistance(info.Variant, v)
		if best == -1 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, best != -1
}

// DefaultFamily returns the first family whose faces match monospace, or the
// first family of any kind when none does.
func (b *FontBook) DefaultFamily(monospace bool) (string, bool) {
	for _, info := range b.infos {
		if info.Monospace == monospace {
			return info.Family, true
		}
	}
	if len(b.infos) == 0 {
		return "", false
	}
	return b.infos[0].Family, true
}

func variantDistance(have, want Variant) int {
	score := 0
	if have.Style != want.Style {
		if have.Style == StyleNormal || want.Style == StyleNormal {
			score += 10000
		} else {
			score += 5000
		}
	}
	d := int(have.Weight) - int(want.Weight)
	if d < 0 {
		d = -d
	}
	return score + d
}
