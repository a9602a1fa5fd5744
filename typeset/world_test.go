package typeset

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/zclconf/go-cty/cty"
)

var testDate = time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)

// testWorld is a minimal in-memory World for engine tests.
type testWorld struct {
	lib   *Library
	book  *FontBook
	fonts []*Font
	main  *Source
	files map[string][]byte
	today time.Time
}

func newTestWorld(t testing.TB, src string, inputs map[string]cty.Value, files map[string][]byte, fontData ...[]byte) *testWorld {
	t.Helper()
	var fonts []*Font
	for _, data := range fontData {
		found := FontsFromBuffer(data)
		if len(found) == 0 {
			t.Fatalf("no faces decoded from %d byte buffer", len(data))
		}
		fonts = append(fonts, found...)
	}
	return &testWorld{
		lib:   NewLibrary(inputs),
		book:  NewFontBook(fonts),
		fonts: fonts,
		main:  Detached(src),
		files: files,
		today: testDate,
	}
}

func (w *testWorld) Library() *Library { return w.lib }
func (w *testWorld) Book() *FontBook   { return w.book }
func (w *testWorld) Main() FileID      { return w.main.ID() }

func (w *testWorld) Source(id FileID) (*Source, error) {
	if id == w.main.ID() {
		return w.main, nil
	}
	data, err := w.File(id)
	if err != nil {
		return nil, err
	}
	return DecodeSource(id, data)
}

func (w *testWorld) File(id FileID) ([]byte, error) {
	path := id.VPath().Rootless()
	data, ok := w.files[path]
	if !ok {
		return nil, NotFoundError(path)
	}
	return data, nil
}

func (w *testWorld) Font(i int) (*Font, bool) {
	if i < 0 || i >= len(w.fonts) {
		return nil, false
	}
	return w.fonts[i], true
}

func (w *testWorld) Today(*int64) (time.Time, bool) {
	return w.today, true
}

// buildCollection packs standalone fonts into a TTC. Each member's tables
// are copied verbatim and its directory offsets are rebased onto the
// collection.
func buildCollection(t testing.TB, faces ...[]byte) []byte {
	t.Helper()
	header := sfntHeaderSize + 4*len(faces)
	out := make([]byte, header)
	copy(out[0:4], collectionTag)
	binary.BigEndian.PutUint32(out[4:8], 0x00010000)
	binary.BigEndian.PutUint32(out[8:12], uint32(len(faces)))
	for i, face := range faces {
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
		base := uint32(len(out))
		binary.BigEndian.PutUint32(out[sfntHeaderSize+4*i:], base)
		out = append(out, face...)
		numTables := int(binary.BigEndian.Uint16(face[4:6]))
		for j := 0; j < numTables; j++ {
			pos := int(base) + sfntHeaderSize + sfntRecordSize*j + 8
			off := binary.BigEndian.Uint32(out[pos : pos+4])
			binary.BigEndian.PutUint32(out[pos:pos+4], off+base)
		}
	}
	return out
}
