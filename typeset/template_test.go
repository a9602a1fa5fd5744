package typeset

import (
	"strings"
	"testing"

	"github.com/zclconf/go-cty/cty"
)

func TestExpand(t *testing.T) {
	t.Parallel()
	inputs := map[string]cty.Value{
		"year":  cty.NumberIntVal(2025),
		"name":  cty.StringVal("world"),
		"draft": cty.True,
		"items": cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
	}
	files := map[string][]byte{
		"notes/intro.txt": []byte("from a file"),
		"blob.bin":        {0xff, 0xfe},
	}
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain text", "# Hello\n", "# Hello\n"},
		{"arithmetic", "Year ${sys.inputs.year + 1}", "Year 2026"},
		{"bare interpolation", "${sys.inputs.year}", "2025"},
		{"stdlib", "${upper(sys.inputs.name)}", "WORLD"},
		{"conditional", "%{ if sys.inputs.draft }DRAFT%{ endif }", "DRAFT"},
		{"for", "%{ for x in sys.inputs.items }- ${x}\n%{ endfor }", "- a\n- b\n"},
		{"escape", "$${literal}", "${literal}"},
		{"read", "${read(\"notes/intro.txt\")}", "from a file"},
		{"read rooted", "${read(\"/notes/intro.txt\")}", "from a file"},
		{"exists", "${exists(\"blob.bin\")} ${exists(\"nope\")}", "true false"},
		{"today", "${sys.today}", "2025-03-14T00:00:00Z"},
		{"today ignores offset", "${today(5) == today()}", "true"},
		{"formatdate", "${formatdate(\"YYYY\", today())}", "2025"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := newTestWorld(t, tc.src, inputs, files)
			got, diags := expand(w, w.main)
			if diags.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", diags)
			}
			if got != tc.want {
				t.Fatalf("expand(%q) = %q, want %q", tc.src, got, tc.want)
			}
		})
	}
}

func TestExpandErrors(t *testing.T) {
	t.Parallel()
	files := map[string][]byte{"latin1.txt": {'c', 'a', 'f', 0xe9}}
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing file", "${read(\"missing.txt\")}", "file not found (searched at missing.txt)"},
		{"invalid utf-8", "${read(\"latin1.txt\")}", "latin1.txt: file is not valid utf-8"},
		{"unknown input", "${sys.inputs.nope}", "nope"},
		{"syntax", "${1 +}", ""},
		{"null result", "${null}", "null or unknown"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := newTestWorld(t, tc.src, nil, files)
			_, diags := expand(w, w.main)
			if !diags.HasErrors() {
				t.Fatalf("expected error diagnostics")
			}
			var msgs []string
			for _, d := range diags {
				msgs = append(msgs, Message(d))
			}
			joined := strings.Join(msgs, "\n")
			if !strings.Contains(joined, tc.want) {
				t.Fatalf("diagnostics %q do not mention %q", joined, tc.want)
			}
		})
	}
}
