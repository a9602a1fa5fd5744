package typeset

import "strings"

const detachedPath = "/main.md"

// VirtualPath is a path inside the virtual project root. It always starts
// with a slash.
type VirtualPath string

// NewVirtualPath roots path. No other normalization takes place: "a/../b"
// stays as written.
func NewVirtualPath(path string) VirtualPath {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return VirtualPath(path)
}

// Rootless returns the path without its leading slash. This is the form used
// as a key into a world's file table.
func (p VirtualPath) Rootless() string {
	return strings.TrimPrefix(string(p), "/")
}

// String returns the rooted path.
func (p VirtualPath) String() string {
	return string(p)
}

// FileID identifies a source or file during compilation. FileIDs are
// comparable values.
type FileID struct {
	vpath    VirtualPath
	detached bool
}

// NewFileID returns the identifier of the virtual file at path.
func NewFileID(path string) FileID {
	return FileID{vpath: NewVirtualPath(path)}
}

// VPath returns the virtual path carried by the identifier.
func (id FileID) VPath() VirtualPath {
	return id.vpath
}

// Detached reports whether the identifier belongs to a detached source.
// A detached identifier never equals one created by NewFileID.
func (id FileID) Detached() bool {
	return id.detached
}

func (id FileID) String() string {
	if id.detached {
		return "detached:" + id.vpath.Rootless()
	}
	return id.vpath.Rootless()
}
