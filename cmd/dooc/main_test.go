package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zclconf/go-cty/cty"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseInputValueKeepsTypes(t *testing.T) {
	cases := []struct {
		raw  string
		want cty.Value
	}{
		{"2025", cty.NumberIntVal(2025)},
		{"1.5", cty.NumberFloatVal(1.5)},
		{"true", cty.True},
		{`"quoted"`, cty.StringVal("quoted")},
		{"plain words", cty.StringVal("plain words")},
		{"ref.thing", cty.StringVal("ref.thing")},
		{"null", cty.StringVal("null")},
		{"", cty.StringVal("")},
	}
	for _, tc := range cases {
		got := parseInputValue(tc.raw)
		if !got.Type().Equals(tc.want.Type()) || !got.Equals(tc.want).True() {
			t.Fatalf("parseInputValue(%q) = %#v, want %#v", tc.raw, got, tc.want)
		}
	}
	list := parseInputValue(`["a", "b"]`)
	if !list.Type().IsTupleType() || list.LengthInt() != 2 {
		t.Fatalf("list input = %#v", list)
	}
}

func TestLoadInputsMergesJSONAndPairs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inputs.json")
	if err := os.WriteFile(path, []byte(`{"year": 2024, "name": "Ada"}`), 0o644); err != nil {
		t.Fatalf("write inputs: %v", err)
	}
	inputs, err := loadInputs(path, []string{"year=2025"})
	if err != nil {
		t.Fatalf("loadInputs: %v", err)
	}
	if !inputs["year"].Equals(cty.NumberIntVal(2025)).True() {
		t.Fatalf("year = %#v, pair should win", inputs["year"])
	}
	if !inputs["name"].Equals(cty.StringVal("Ada")).True() {
		t.Fatalf("name = %#v", inputs["name"])
	}

	if _, err := loadInputs("", []string{"novalue"}); err == nil {
		t.Fatalf("expected error for missing =")
	}
	if err := os.WriteFile(path, []byte(`[1, 2]`), 0o644); err != nil {
		t.Fatalf("write inputs: %v", err)
	}
	if _, err := loadInputs(path, nil); err == nil || !strings.Contains(err.Error(), "JSON object") {
		t.Fatalf("expected object error, got %v", err)
	}
}

func TestLoadFilesNamesEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logo.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	files, err := loadFiles([]string{"img/logo.png=" + path, path})
	if err != nil {
		t.Fatalf("loadFiles: %v", err)
	}
	if string(files["img/logo.png"]) != "png" || string(files["logo.png"]) != "png" {
		t.Fatalf("unexpected files %v", files)
	}
	if _, err := loadFiles([]string{"x=" + filepath.Join(dir, "missing")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFontsChecksExtension(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "go.ttf")
	bad := filepath.Join(dir, "go.txt")
	for _, p := range []string{good, bad} {
		if err := os.WriteFile(p, goregular.TTF, 0o644); err != nil {
			t.Fatalf("write font: %v", err)
		}
	}
	fonts, err := loadFonts([]string{good})
	if err != nil || len(fonts) != 1 {
		t.Fatalf("loadFonts = %d, %v", len(fonts), err)
	}
	if _, err := loadFonts([]string{bad}); err == nil {
		t.Fatalf("expected extension error")
	}
	if _, err := loadFonts([]string{dir}); err == nil {
		t.Fatalf("expected directory error")
	}
}

func TestRunWritesPDF(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "report.md")
	if err := os.WriteFile(tmpl, []byte("# Report ${sys.inputs.year}\n\n${read(\"notes.txt\")}\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	notes := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(notes, []byte("All good."), 0o644); err != nil {
		t.Fatalf("write notes: %v", err)
	}
	out := filepath.Join(dir, "out", "report.pdf")
	var stdout, stderr bytes.Buffer
	code := run([]string{"-i", "year=2025", "-f", "notes.txt=" + notes, "-o", out, tmpl}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestRunReportsCompileErrors(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "report.md")
	if err := os.WriteFile(tmpl, []byte("${read(\"missing.txt\")}\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	out := filepath.Join(dir, "report.pdf")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", out, tmpl}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "missing.txt") {
		t.Fatalf("stderr %q does not name the missing file", stderr.String())
	}
}

func TestRunWritesToStdoutWriter(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(tmpl, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", "-", tmpl}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !bytes.HasPrefix(stdout.Bytes(), []byte("%PDF-")) {
		t.Fatalf("stdout is not a PDF")
	}
}

func TestRunListThemes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--list-themes"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stdout.String(), "paper") {
		t.Fatalf("themes %q missing paper", stdout.String())
	}
}

func TestRunRejectsBadArguments(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Fatalf("no template: exit %d, want 2", code)
	}
	if code := run([]string{"--theme", "nope", "x.md"}, &stdout, &stderr); code != 2 {
		t.Fatalf("bad theme: exit %d, want 2", code)
	}
}

func TestRunFailedCompileKeepsExistingOutput(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "report.md")
	if err := os.WriteFile(tmpl, []byte("${read(\"missing.txt\")}\n"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	out := filepath.Join(dir, "report.pdf")
	previous := []byte("%PDF-1.3 previous run")
	if err := os.WriteFile(out, previous, 0o644); err != nil {
		t.Fatalf("write previous output: %v", err)
	}
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-o", out, tmpl}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.Equal(got, previous) {
		t.Fatalf("existing output was modified: %q", got)
	}

	fresh := filepath.Join(dir, "sub", "fresh.pdf")
	if code := run([]string{"-o", fresh, tmpl}, &stdout, &stderr); code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if _, err := os.Stat(fresh); !os.IsNotExist(err) {
		t.Fatalf("failed compile created %s (stat err %v)", fresh, err)
	}
}

func TestUsageListsPageSizes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"--help"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d", code)
	}
	if !strings.Contains(stderr.String(), "A4|A5") {
		t.Fatalf("usage %q does not list page sizes", stderr.String())
	}
}
