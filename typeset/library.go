package typeset

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Library is the static part of the evaluation scope: the named inputs and
// the pure standard functions. It is built once per world.
type Library struct {
	inputs cty.Value
	funcs  map[string]function.Function
}

// NewLibrary returns a library exposing inputs as sys.inputs. Values pass
// through unchanged; the zero cty.Value becomes a dynamic null.
func NewLibrary(inputs map[string]cty.Value) *Library {
	obj := cty.EmptyObjectVal
	if len(inputs) > 0 {
		attrs := make(map[string]cty.Value, len(inputs))
		for key, value := range inputs {
			if value.Type() == cty.NilType {
				value = cty.NullVal(cty.DynamicPseudoType)
			}
			attrs[key] = value
		}
		obj = cty.ObjectVal(attrs)
	}
	return &Library{inputs: obj, funcs: standardFunctions()}
}

// Inputs returns the input dictionary as a cty object.
func (l *Library) Inputs() cty.Value {
	return l.inputs
}

// Input returns a single named input.
func (l *Library) Input(key string) (cty.Value, bool) {
	if !l.inputs.Type().HasAttribute(key) {
		return cty.NilVal, false
	}
	return l.inputs.GetAttr(key), true
}

// Functions returns a copy of the standard function table.
func (l *Library) Functions() map[string]function.Function {
	out := make(map[string]function.Function, len(l.funcs))
	for name, fn := range l.funcs {
		out[name] = fn
	}
	return out
}

func standardFunctions() map[string]function.Function {
	return map[string]function.Function{
		"abs":        stdlib.AbsoluteFunc,
		"ceil":       stdlib.CeilFunc,
		"chomp":      stdlib.ChompFunc,
		"coalesce":   stdlib.CoalesceFunc,
		"concat":     stdlib.ConcatFunc,
		"floor":      stdlib.FloorFunc,
		"format":     stdlib.FormatFunc,
		"formatdate": stdlib.FormatDateFunc,
		"formatlist": stdlib.FormatListFunc,
		"indent":     stdlib.IndentFunc,
		"join":       stdlib.JoinFunc,
		"jsondecode": stdlib.JSONDecodeFunc,
		"jsonencode": stdlib.JSONEncodeFunc,
		"keys":       stdlib.KeysFunc,
		"length":     stdlib.LengthFunc,
		"lookup":     stdlib.LookupFunc,
		"lower":      stdlib.LowerFunc,
		"max":        stdlib.MaxFunc,
		"min":        stdlib.MinFunc,
		"range":      stdlib.RangeFunc,
		"replace":    stdlib.ReplaceFunc,
		"sort":       stdlib.SortFunc,
		"split":      stdlib.SplitFunc,
		"strlen":     stdlib.StrlenFunc,
		"substr":     stdlib.SubstrFunc,
		"title":      stdlib.TitleFunc,
		"trimspace":  stdlib.TrimSpaceFunc,
		"upper":      stdlib.UpperFunc,
		"values":     stdlib.ValuesFunc,
	}
}
