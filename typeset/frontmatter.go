package typeset

import (
	"bytes"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// splitFrontMatter removes a leading front matter block from text and parses
// it into metadata. Three delimiters are recognised: "---" (key: value
// lines), "+++" (HCL attributes, which covers simple TOML) and ";;;" (a JSON
// object). Text that does not open with a plausible block, or whose block is
// never closed, is returned unchanged.
func splitFrontMatter(text string) (Meta, string, hcl.Diagnostics) {
	src := []byte(text)
	openLine, openNext, ok := nextLine(src, 0)
	if !ok {
		return Meta{}, text, nil
	}
	delim, isFrontMatter := parseOpeningFrontMatterDelimiter(openLine)
	if !isFrontMatter {
		return Meta{}, text, nil
	}
	secondLine, _, ok := nextLine(src, openNext)
	if !ok || !frontMatterMetadataLikely(secondLine) {
		return Meta{}, text, nil
	}
	closeStart, closeNext, found := findClosingFrontMatterDelimiter(src, openNext, delim)
	if !found {
		return Meta{}, text, nil
	}
	block := src[openNext:closeStart]
	body := string(src[closeNext:])

	var (
		attrs map[string]cty.Value
		diags hcl.Diagnostics
	)
	switch string(delim) {
	case "---":
		attrs = parseKeyValueFrontMatter(block)
	case "+++":
		attrs, diags = parseHCLFrontMatter(block)
	case ";;;":
		attrs, diags = parseJSONFrontMatter(block)
	}
	return metaFromAttrs(attrs), body, diags
}

func parseKeyValueFrontMatter(block []byte) map[string]cty.Value {
	attrs := make(map[string]cty.Value)
	for _, line := range strings.Split(string(block), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
			var items []cty.Value
			for _, item := range strings.Split(value[1:len(value)-1], ",") {
				if item = unquote(strings.TrimSpace(item)); item != "" {
					items = append(items, cty.StringVal(item))
				}
			}
			if len(items) == 0 {
				attrs[key] = cty.ListValEmpty(cty.String)
			} else {
				attrs[key] = cty.TupleVal(items)
			}
			continue
		}
		attrs[key] = cty.StringVal(unquote(value))
	}
	return attrs
}

func parseHCLFrontMatter(block []byte) (map[string]cty.Value, hcl.Diagnostics) {
	file, diags := hclsyntax.ParseConfig(block, "frontmatter.hcl", hcl.Pos{Line: 2, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, asWarnings(diags)
	}
	hclAttrs, attrDiags := file.Body.JustAttributes()
	diags = append(diags, attrDiags...)
	attrs := make(map[string]cty.Value, len(hclAttrs))
	for name, attr := range hclAttrs {
		val, valDiags := attr.Expr.Value(nil)
		diags = append(diags, valDiags...)
		if valDiags.HasErrors() {
			continue
		}
		attrs[strings.ToLower(name)] = val
	}
	return attrs, asWarnings(diags)
}

func parseJSONFrontMatter(block []byte) (map[string]cty.Value, hcl.Diagnostics) {
	ty, err := ctyjson.ImpliedType(block)
	if err == nil && !ty.IsObjectType() {
		return nil, hcl.Diagnostics{warningDiagnostic("Invalid front matter", "JSON front matter must be an object.")}
	}
	var val cty.Value
	if err == nil {
		val, err = ctyjson.Unmarshal(block, ty)
	}
	if err != nil {
		return nil, hcl.Diagnostics{warningDiagnostic("Invalid front matter", err.Error())}
	}
	attrs := make(map[string]cty.Value)
	for name, v := range val.AsValueMap() {
		attrs[strings.ToLower(name)] = v
	}
	return attrs, nil
}

func metaFromAttrs(attrs map[string]cty.Value) Meta {
	var m Meta
	pick := func(keys ...string) string {
		for _, key := range keys {
			if v, ok := attrs[key]; ok {
				if s, ok := metaString(v); ok {
					return s
				}
			}
		}
		return ""
	}
	m.Title = pick("title")
	m.Author = pick("author", "authors")
	m.Subject = pick("subject", "description")
	m.Keywords = pick("keywords", "tags")
	m.Lang = pick("lang", "language")
	return m
}

// metaString flattens a metadata value to text. Sequences are joined with
// commas.
func metaString(v cty.Value) (string, bool) {
	if v.IsNull() || !v.IsWhollyKnown() {
		return "", false
	}
	ty := v.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		var parts []string
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if s, ok := metaString(elem); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", "), true
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", false
	}
	return s.AsString(), true
}

func asWarnings(diags hcl.Diagnostics) hcl.Diagnostics {
	for _, d := range diags {
		d.Severity = hcl.DiagWarning
	}
	return diags
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

func nextLine(src []byte, start int) ([]byte, int, bool) {
	if start >= len(src) {
		return nil, 0, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	lineEnd := start + i
	return trimCR(src[start:lineEnd]), lineEnd + 1, true
}

func parseOpeningFrontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func frontMatterMetadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

// findClosingFrontMatterDelimiter returns the offset of the closing line and
// the offset just past it.
func findClosingFrontMatterDelimiter(src []byte, start int, delim []byte) (int, int, bool) {
	for idx := start; idx < len(src); {
		line, next, ok := nextLine(src, idx)
		if !ok {
			return 0, 0, false
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return idx, next, true
		}
		idx = next
	}
	return 0, 0, false
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
