package typeset

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	sfntHeaderSize = 12
	sfntRecordSize = 16
	collectionTag  = "ttcf"
)

var errShortFont = errors.New("font data truncated")

type tableRecord struct {
	tag      string
	checksum uint32
	offset   uint32
	length   uint32
}

func isCollection(data []byte) bool {
	return len(data) >= 4 && string(data[:4]) == collectionTag
}

// faceOffset returns where the table directory of face index starts.
func faceOffset(data []byte, index int) (uint32, error) {
	if len(data) < sfntHeaderSize {
		return 0, errShortFont
	}
	if !isCollection(data) {
		if index != 0 {
			return 0, fmt.Errorf("face index %d out of range (1 face)", index)
		}
		return 0, nil
	}
	n := binary.BigEndian.Uint32(data[8:12])
	if index < 0 || uint64(index) >= uint64(n) {
		return 0, fmt.Errorf("face index %d out of range (%d faces)", index, n)
	}
	pos := sfntHeaderSize + 4*index
	if pos+4 > len(data) {
		return 0, errShortFont
	}
	return binary.BigEndian.Uint32(data[pos : pos+4]), nil
}

func readTables(data []byte, off uint32) ([]tableRecord, error) {
	start := uint64(off)
	if start+sfntHeaderSize > uint64(len(data)) {
		return nil, errShortFont
	}
	numTables := uint64(binary.BigEndian.Uint16(data[start+4 : start+6]))
	end := start + sfntHeaderSize + sfntRecordSize*numTables
	if end > uint64(len(data)) {
		return nil, errShortFont
	}
	tables := make([]tableRecord, 0, numTables)
	for pos := start + sfntHeaderSize; pos < end; pos += sfntRecordSize {
		rec := data[pos : pos+sfntRecordSize]
		t := tableRecord{
			tag:      string(rec[0:4]),
			checksum: binary.BigEndian.Uint32(rec[4:8]),
			offset:   binary.BigEndian.Uint32(rec[8:12]),
			length:   binary.BigEndian.Uint32(rec[12:16]),
		}
		if uint64(t.offset)+uint64(t.length) > uint64(len(data)) {
			return nil, fmt.Errorf("table %q: %w", t.tag, errShortFont)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func hasTable(tables []tableRecord, tag string) bool {
	for _, t := range tables {
		if t.tag == tag {
			return true
		}
	}
	return false
}

// extractFace returns a standalone sfnt binary for face index. Plain fonts
// are returned as is; collection members get their own table directory with
// offsets relative to the new buffer.
func extractFace(data []byte, index int) ([]byte, []tableRecord, error) {
	off, err := faceOffset(data, index)
	if err != nil {
		return nil, nil, err
	}
	tables, err := readTables(data, off)
	if err != nil {
		return nil, nil, err
	}
	if !isCollection(data) {
		return data, tables, nil
	}

	offsets := make([]uint32, len(tables))
	size := uint32(sfntHeaderSize + sfntRecordSize*len(tables))
	for i, t := range tables {
		offsets[i] = size
		size += pad4(t.length)
	}
	out := make([]byte, size)
	copy(out, data[off:off+sfntHeaderSize])
	for i, t := range tables {
		rec := out[sfntHeaderSize+sfntRecordSize*i:]
		copy(rec[0:4], t.tag)
		binary.BigEndian.PutUint32(rec[4:8], t.checksum)
		binary.BigEndian.PutUint32(rec[8:12], offsets[i])
		binary.BigEndian.PutUint32(rec[12:16], t.length)
		copy(out[offsets[i]:], data[t.offset:t.offset+t.length])
		tables[i].offset = offsets[i]
	}
	return out, tables, nil
}

func pad4(n uint32) uint32 {
	return (n + 3) &^ 3
}
