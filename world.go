package dooc

import (
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"

	"pkt.systems/dooc/typeset"
)

// World is the immutable snapshot a single compilation reads from. All state
// is set by NewWorld; every method is a read-only projection of it, so a
// World is safe for concurrent use.
type World struct {
	library *typeset.Library
	book    *typeset.FontBook
	fonts   []*typeset.Font
	source  *typeset.Source
	today   time.Time
	files   map[string][]byte
}

var _ typeset.World = (*World)(nil)

// NewWorld freezes the inputs of one compilation. Files are keyed by the
// root-relative path documents use to refer to them ("img/logo.png"); keys
// are used verbatim. Every font buffer is decoded eagerly, including each
// face of a collection, in buffer order and then face order. Buffers that
// hold no decodable face are skipped.
func NewWorld(source string, inputs map[string]cty.Value, files map[string][]byte, fonts [][]byte) *World {
	return newWorld(source, inputs, files, fonts, time.Now())
}

func newWorld(source string, inputs map[string]cty.Value, files map[string][]byte, fonts [][]byte, now time.Time) *World {
	table := make(map[string][]byte, len(files))
	for name, data := range files {
		table[name] = data
	}
	var faces []*typeset.Font
	for _, data := range fonts {
		faces = append(faces, typeset.FontsFromBuffer(data)...)
	}
	return &World{
		library: typeset.NewLibrary(inputs),
		book:    typeset.NewFontBook(faces),
		fonts:   faces,
		source:  typeset.Detached(source),
		today:   captureDate(now),
		files:   table,
	}
}

// captureDate reduces now to its local calendar date. It panics for years a
// date cannot represent, which no real clock produces.
func captureDate(now time.Time) time.Time {
	local := time.Unix(now.Unix(), 0).In(now.Location())
	year, month, day := local.Date()
	if year < 0 || year > 9999 {
		panic(fmt.Sprintf("dooc: current time %s is outside the representable date range", now))
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Library returns the evaluation scope holding the named inputs.
func (w *World) Library() *typeset.Library {
	return w.library
}

// Book returns the metadata index over Fonts.
func (w *World) Book() *typeset.FontBook {
	return w.book
}

// Main returns the detached identifier of the document source.
func (w *World) Main() typeset.FileID {
	return w.source.ID()
}

// Source resolves id to text. The main identifier yields the document
// source; any other identifier is looked up in the file table and decoded
// as UTF-8 under the requested id.
func (w *World) Source(id typeset.FileID) (*typeset.Source, error) {
	if id == w.source.ID() {
		return w.source, nil
	}
	data, err := w.File(id)
	if err != nil {
		return nil, err
	}
	return typeset.DecodeSource(id, data)
}

// File returns the bytes stored under the root-relative path of id. The
// returned slice is shared; callers must not modify it.
func (w *World) File(id typeset.FileID) ([]byte, error) {
	path := id.VPath().Rootless()
	data, ok := w.files[path]
	if !ok {
		return nil, typeset.NotFoundError(path)
	}
	return data, nil
}

// Font returns the face at index, or false when index is out of range.
func (w *World) Font(index int) (*typeset.Font, bool) {
	if index < 0 || index >= len(w.fonts) {
		return nil, false
	}
	return w.fonts[index], true
}

// Fonts returns every decoded face in world order.
func (w *World) Fonts() []*typeset.Font {
	out := make([]*typeset.Font, len(w.fonts))
	copy(out, w.fonts)
	return out
}

// Today returns the date captured when the world was built. The offset is
// accepted for interface compatibility but not applied.
func (w *World) Today(offset *int64) (time.Time, bool) {
	return w.today, true
}
