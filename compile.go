package dooc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"

	"pkt.systems/dooc/pdf"
	"pkt.systems/dooc/typeset"
)

// ErrExport reports that a compiled document could not be written as PDF.
// The underlying cause is wrapped after it.
var ErrExport = errors.New("failed to export PDF internally")

// CompileError carries the diagnostics of a failed compilation.
type CompileError struct {
	Diagnostics hcl.Diagnostics
}

// Error lists each error diagnostic on its own line, prefixed with "Error: ".
func (e *CompileError) Error() string {
	var b strings.Builder
	for _, d := range e.Diagnostics {
		if d.Severity != hcl.DiagError {
			continue
		}
		b.WriteString("Error: ")
		b.WriteString(typeset.Message(d))
		b.WriteByte('\n')
	}
	return b.String()
}

// Compile builds a World from its four inputs and compiles it to PDF. It
// returns either the PDF bytes or an error: a *CompileError when the source
// has errors, or an error matching ErrExport when the PDF could not be
// written.
func Compile(source string, inputs map[string]cty.Value, files map[string][]byte, fonts [][]byte, opts ...Option) ([]byte, error) {
	return CompileWorld(NewWorld(source, inputs, files, fonts), opts...)
}

// CompileWorld compiles w to PDF.
func CompileWorld(w typeset.World, opts ...Option) ([]byte, error) {
	cfg := newCompileConfig(opts)
	doc, err := typesetWorld(w, cfg)
	if err != nil {
		return nil, err
	}
	data, err := pdf.Export(doc, cfg.pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExport, err)
	}
	return data, nil
}

// Typeset compiles w without exporting it.
func Typeset(w typeset.World, opts ...Option) (*typeset.Document, error) {
	return typesetWorld(w, newCompileConfig(opts))
}

func typesetWorld(w typeset.World, cfg compileConfig) (*typeset.Document, error) {
	doc, diags := typeset.Compile(w, cfg.typeset)
	if cfg.warn != nil {
		for _, d := range diags {
			if d.Severity == hcl.DiagWarning {
				cfg.warn(d)
			}
		}
	}
	if diags.HasErrors() {
		return nil, &CompileError{Diagnostics: diags}
	}
	return doc, nil
}
