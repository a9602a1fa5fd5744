package typeset

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

var (
	// ErrNotFound reports a file or source missing from the world.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidUTF8 reports a file requested as text that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("file is not valid utf-8")
)

// FileErrorKind classifies a FileError.
type FileErrorKind uint8

const (
	// NotFound means no file exists at Path.
	NotFound FileErrorKind = iota + 1
	// InvalidUTF8 means the file at Path could not be decoded as text.
	InvalidUTF8
)

// FileError is returned by World.Source and World.File. It matches
// ErrNotFound or ErrInvalidUTF8 through errors.Is.
type FileError struct {
	Kind FileErrorKind
	Path string
}

// NotFoundError returns a FileError for a missing path.
func NotFoundError(path string) *FileError {
	return &FileError{Kind: NotFound, Path: path}
}

// InvalidUTF8Error returns a FileError for undecodable text at path.
func InvalidUTF8Error(path string) *FileError {
	return &FileError{Kind: InvalidUTF8, Path: path}
}

func (e *FileError) Error() string {
	switch e.Kind {
	case NotFound:
		return fmt.Sprintf("file not found (searched at %s)", e.Path)
	case InvalidUTF8:
		if e.Path == "" {
			return ErrInvalidUTF8.Error()
		}
		return fmt.Sprintf("%s: %s", e.Path, ErrInvalidUTF8)
	default:
		return fmt.Sprintf("file error (%s)", e.Path)
	}
}

// Is lets errors.Is match the sentinel for the error's kind.
func (e *FileError) Is(target error) bool {
	switch e.Kind {
	case NotFound:
		return target == ErrNotFound
	case InvalidUTF8:
		return target == ErrInvalidUTF8
	}
	return false
}

// Message renders a diagnostic as a single human-readable line.
func Message(d *hcl.Diagnostic) string {
	if d == nil {
		return ""
	}
	if d.Detail == "" {
		return d.Summary
	}
	if d.Summary == "" {
		return d.Detail
	}
	return d.Summary + ": " + d.Detail
}

func errorDiagnostic(summary string, err error) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   err.Error(),
	}
}

func warningDiagnostic(summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagWarning,
		Summary:  summary,
		Detail:   detail,
	}
}
