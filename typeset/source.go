package typeset

import (
	"strings"
	"unicode/utf8"
)

// Source is an immutable source text together with its identifier. Sources
// are shared by pointer; nothing mutates them after construction.
type Source struct {
	id   FileID
	text string
}

// NewSource returns a source for text under id.
func NewSource(id FileID, text string) *Source {
	return &Source{id: id, text: text}
}

// Detached returns a source that is not backed by any virtual file.
func Detached(text string) *Source {
	return NewSource(FileID{vpath: detachedPath, detached: true}, text)
}

// DecodeSource validates data as UTF-8 and wraps it as a source under id.
func DecodeSource(id FileID, data []byte) (*Source, error) {
	if !utf8.Valid(data) {
		return nil, InvalidUTF8Error(id.VPath().Rootless())
	}
	return NewSource(id, string(data)), nil
}

// ID returns the source's identifier.
func (s *Source) ID() FileID {
	return s.id
}

// Text returns the full source text.
func (s *Source) Text() string {
	return s.text
}

// Len returns the length of the text in bytes.
func (s *Source) Len() int {
	return len(s.text)
}

// LineCount returns the number of lines in the text.
func (s *Source) LineCount() int {
	if s.text == "" {
		return 0
	}
	n := strings.Count(s.text, "\n")
	if !strings.HasSuffix(s.text, "\n") {
		n++
	}
	return n
}
