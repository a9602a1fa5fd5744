package typeset

import (
	"errors"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/gocty"
)

var errNoDate = errors.New("current date unavailable")

// expand evaluates src as an HCL template against the world's scope and
// returns the resulting text.
func expand(w World, src *Source) (string, hcl.Diagnostics) {
	expr, diags := hclsyntax.ParseTemplate([]byte(src.Text()), src.ID().String(), hcl.InitialPos)
	if diags.HasErrors() {
		return "", diags
	}
	val, evalDiags := expr.Value(evalContext(w))
	diags = append(diags, evalDiags...)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() || !val.IsKnown() {
		return "", append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid template result",
			Detail:   "The document evaluated to a null or unknown value.",
			Subject:  expr.Range().Ptr(),
		})
	}
	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid template result",
			Detail:   "The document must evaluate to text: " + err.Error(),
			Subject:  expr.Range().Ptr(),
		})
	}
	return str.AsString(), diags
}

func evalContext(w World) *hcl.EvalContext {
	lib := w.Library()
	funcs := lib.Functions()
	funcs["read"] = readFunc(w)
	funcs["exists"] = existsFunc(w)
	funcs["today"] = todayFunc(w)

	today := cty.NullVal(cty.String)
	if t, ok := w.Today(nil); ok {
		today = cty.StringVal(formatDate(t))
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"sys": cty.ObjectVal(map[string]cty.Value{
				"inputs": lib.Inputs(),
				"today":  today,
			}),
		},
		Functions: funcs,
	}
}

// readFunc returns the text of a virtual file. The text is inserted as is; it
// is not evaluated as a template.
func readFunc(w World) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the text of a virtual file.",
		Params: []function.Parameter{
			{Name: "path", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			src, err := w.Source(NewFileID(args[0].AsString()))
			if err != nil {
				return cty.UnknownVal(cty.String), err
			}
			return cty.StringVal(src.Text()), nil
		},
	})
}

func existsFunc(w World) function.Function {
	return function.New(&function.Spec{
		Description: "Reports whether a virtual file exists.",
		Params: []function.Parameter{
			{Name: "path", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.Bool),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			_, err := w.File(NewFileID(args[0].AsString()))
			switch {
			case err == nil:
				return cty.True, nil
			case errors.Is(err, ErrNotFound):
				return cty.False, nil
			default:
				return cty.UnknownVal(cty.Bool), err
			}
		},
	})
}

func todayFunc(w World) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the compilation date as an RFC 3339 timestamp.",
		VarParam:    &function.Parameter{Name: "offset", Type: cty.Number},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			var offset *int64
			switch len(args) {
			case 0:
			case 1:
				var hours int64
				if err := gocty.FromCtyValue(args[0], &hours); err != nil {
					return cty.UnknownVal(cty.String), function.NewArgError(0, err)
				}
				offset = &hours
			default:
				return cty.UnknownVal(cty.String), function.NewArgErrorf(1, "today takes at most one argument")
			}
			t, ok := w.Today(offset)
			if !ok {
				return cty.UnknownVal(cty.String), errNoDate
			}
			return cty.StringVal(formatDate(t)), nil
		},
	})
}

func formatDate(t time.Time) string {
	return t.Format(time.RFC3339)
}
