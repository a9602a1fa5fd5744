package typeset

import (
	"errors"
	"testing"
)

func TestFileIDPaths(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in       string
		rooted   string
		rootless string
	}{
		{"a.png", "/a.png", "a.png"},
		{"/a.png", "/a.png", "a.png"},
		{"img/../a.png", "/img/../a.png", "img/../a.png"},
		{"./a.png", "/./a.png", "./a.png"},
	}
	for _, tc := range tests {
		id := NewFileID(tc.in)
		if got := id.VPath().String(); got != tc.rooted {
			t.Fatalf("NewFileID(%q) rooted = %q, want %q", tc.in, got, tc.rooted)
		}
		if got := id.VPath().Rootless(); got != tc.rootless {
			t.Fatalf("NewFileID(%q) rootless = %q, want %q", tc.in, got, tc.rootless)
		}
	}
}

func TestDetachedIDIsDistinct(t *testing.T) {
	t.Parallel()
	main := Detached("body").ID()
	if !main.Detached() {
		t.Fatalf("detached source id not marked detached")
	}
	if main == NewFileID(main.VPath().String()) {
		t.Fatalf("detached id equals a path-backed id")
	}
	if main.String() != "detached:main.md" {
		t.Fatalf("unexpected id string %q", main.String())
	}
}

func TestDecodeSource(t *testing.T) {
	t.Parallel()
	id := NewFileID("notes.txt")
	src, err := DecodeSource(id, []byte("one\ntwo"))
	if err != nil {
		t.Fatalf("DecodeSource: %v", err)
	}
	if src.ID() != id || src.Text() != "one\ntwo" || src.LineCount() != 2 || src.Len() != 7 {
		t.Fatalf("unexpected source %+v", src)
	}
	_, err = DecodeSource(id, []byte{0xc3, 0x28})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("expected ErrInvalidUTF8, got %v", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Path != "notes.txt" || fe.Kind != InvalidUTF8 {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestFileErrorMessages(t *testing.T) {
	t.Parallel()
	err := NotFoundError("a/b.png")
	if err.Error() != "file not found (searched at a/b.png)" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("sentinel matching is wrong")
	}
}
