package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/spf13/pflag"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"golang.org/x/term"
	"pkt.systems/mdf"
	"pkt.systems/version"

	"pkt.systems/dooc"
	"pkt.systems/dooc/pdf"
)

const (
	defaultOutput       = "output.pdf"
	defaultPreviewTheme = "default"
	defaultWidth        = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/dooc")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	inputs       []string
	inputsJSON   string
	files        []string
	fonts        []string
	pageSize     string
	margin       float64
	fontSize     float64
	lineHeight   float64
	family       string
	monoFamily   string
	themeName    string
	listThemes   bool
	pageNumbers  bool
	preview      bool
	previewTheme string
	outPath      string
	verbose      bool
	logFormat    string
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	defaults := pdf.DefaultConfig()
	flags := pflag.NewFlagSet("dooc", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringArrayVarP(&opts.inputs, "input", "i", nil, "Named input key=value (value is an HCL literal, else a string)")
	flags.StringVar(&opts.inputsJSON, "inputs-json", "", "JSON object file with named inputs")
	flags.StringArrayVarP(&opts.files, "file", "f", nil, "Virtual file name=path")
	flags.StringArrayVar(&opts.fonts, "font", nil, "Font file (TTF, OTF, TTC or OTC)")
	flags.StringVar(&opts.pageSize, "page-size", defaults.PageSize, "PDF page size: "+strings.Join(pdf.PageSizes(), "|"))
	flags.Float64Var(&opts.margin, "margin", defaults.Margin, "Page margin in points")
	flags.Float64Var(&opts.fontSize, "font-size", defaults.FontSize, "Base font size in points")
	flags.Float64Var(&opts.lineHeight, "line-height", defaults.LineHeight, "Line height multiplier")
	flags.StringVar(&opts.family, "family", "", "Body font family (default: first supplied family)")
	flags.StringVar(&opts.monoFamily, "mono-family", "", "Code font family (default: first monospace family)")
	flags.StringVarP(&opts.themeName, "theme", "t", defaults.Theme.Name(), "PDF theme name")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available PDF themes")
	flags.BoolVar(&opts.pageNumbers, "page-numbers", false, "Print page numbers in the footer")
	flags.BoolVar(&opts.preview, "preview", false, "Render the expanded Markdown to the terminal instead of writing a PDF")
	flags.StringVar(&opts.previewTheme, "preview-theme", defaultPreviewTheme, "Terminal theme for --preview")
	flags.StringVarP(&opts.outPath, "output", "o", defaultOutput, "Output PDF path (- for stdout)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log debug details")
	flags.StringVar(&opts.logFormat, "log-format", "text", "Log format: text|json")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: dooc [flags] template.md\n")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.listThemes {
		printThemes(stdout)
		return 0
	}

	logger := newLogger(opts.verbose, opts.logFormat, stderr)

	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	theme, ok := pdf.ThemeByName(opts.themeName)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", opts.themeName)
		printThemes(stderr)
		return 2
	}

	templatePath := flags.Arg(0)
	source, err := os.ReadFile(normalizePath(templatePath))
	if err != nil {
		logger.Error("read template", "path", templatePath, "error", err)
		return 1
	}
	inputs, err := loadInputs(opts.inputsJSON, opts.inputs)
	if err != nil {
		logger.Error("parse inputs", "error", err)
		return 2
	}
	files, err := loadFiles(opts.files)
	if err != nil {
		logger.Error("load files", "error", err)
		return 1
	}
	fonts, err := loadFonts(opts.fonts)
	if err != nil {
		logger.Error("load fonts", "error", err)
		return 1
	}

	world := dooc.NewWorld(string(source), inputs, files, fonts)
	logger.Debug("world ready",
		"inputs", len(inputs),
		"files", len(files),
		"faces", world.Book().Len(),
		"families", strings.Join(world.Book().Families(), ", "),
	)

	compileOpts := []dooc.Option{
		dooc.WithPageSize(opts.pageSize),
		dooc.WithMargin(opts.margin),
		dooc.WithFontSize(opts.fontSize),
		dooc.WithLineHeight(opts.lineHeight),
		dooc.WithFamily(opts.family),
		dooc.WithMonoFamily(opts.monoFamily),
		dooc.WithTheme(theme),
		dooc.WithPageNumbers(opts.pageNumbers),
		dooc.WithWarningHandler(func(d *hcl.Diagnostic) {
			logger.Warn(d.Summary, "detail", d.Detail)
		}),
	}
	diagFiles := map[string]*hcl.File{world.Main().String(): {Bytes: source}}

	if opts.preview {
		doc, err := dooc.Typeset(world, compileOpts...)
		if err != nil {
			reportError(stderr, err, diagFiles)
			return 1
		}
		previewTheme, ok := mdf.ThemeByName(opts.previewTheme)
		if !ok {
			fmt.Fprintf(stderr, "unknown preview theme %q\n", opts.previewTheme)
			return 2
		}
		if err := mdf.Render(mdf.RenderRequest{
			Reader:  strings.NewReader(doc.Markup),
			Writer:  stdout,
			Width:   terminalWidth(stdout, defaultWidth),
			Theme:   previewTheme,
			Options: []mdf.RenderOption{mdf.WithOSC8(mdf.DetectOSC8Support())},
		}); err != nil {
			logger.Error("preview", "error", err)
			return 1
		}
		return 0
	}

	if toStdout(opts.outPath) && isTerminal(stdout) {
		fmt.Fprintln(stderr, "refusing to write PDF to terminal; use -o/--output")
		return 2
	}

	// Nothing is written unless the compile succeeded.
	data, err := dooc.CompileWorld(world, compileOpts...)
	if err != nil {
		reportError(stderr, err, diagFiles)
		return 1
	}
	if err := writeOutput(opts.outPath, stdout, data); err != nil {
		logger.Error("write output", "path", opts.outPath, "error", err)
		return 1
	}
	logger.Debug("wrote pdf", "path", opts.outPath, "bytes", len(data))
	return 0
}

func newLogger(verbose bool, format string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// reportError prints compile diagnostics with source snippets where the
// diagnostic carries a range, and any other error verbatim.
func reportError(w io.Writer, err error, files map[string]*hcl.File) {
	var cerr *dooc.CompileError
	if !errors.As(err, &cerr) {
		fmt.Fprintf(w, "compile: %v\n", err)
		return
	}
	width := uint(terminalWidth(w, defaultWidth))
	writer := hcl.NewDiagnosticTextWriter(w, files, width, isTerminal(w))
	var errs hcl.Diagnostics
	for _, d := range cerr.Diagnostics {
		if d.Severity == hcl.DiagError {
			errs = append(errs, d)
		}
	}
	if werr := writer.WriteDiagnostics(errs); werr != nil {
		fmt.Fprint(w, err.Error())
	}
}

func printThemes(w io.Writer) {
	names := pdf.AvailableThemes()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// loadInputs merges the JSON inputs file with key=value pairs; pairs win.
func loadInputs(jsonPath string, pairs []string) (map[string]cty.Value, error) {
	inputs := make(map[string]cty.Value)
	if jsonPath != "" {
		data, err := os.ReadFile(normalizePath(jsonPath))
		if err != nil {
			return nil, err
		}
		fromJSON, err := decodeInputsJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", jsonPath, err)
		}
		for k, v := range fromJSON {
			inputs[k] = v
		}
	}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("input %q: expected key=value", pair)
		}
		inputs[key] = parseInputValue(raw)
	}
	return inputs, nil
}

func decodeInputsJSON(data []byte) (map[string]cty.Value, error) {
	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return nil, err
	}
	if !ty.IsObjectType() {
		return nil, fmt.Errorf("inputs must be a JSON object, got %s", ty.FriendlyName())
	}
	val, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return nil, err
	}
	return val.AsValueMap(), nil
}

// parseInputValue evaluates raw as a constant HCL expression so numbers,
// bools, lists and objects keep their types. Anything else is a string.
func parseInputValue(raw string) cty.Value {
	expr, diags := hclsyntax.ParseExpression([]byte(raw), "input", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.StringVal(raw)
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() || !val.IsWhollyKnown() || val.IsNull() {
		return cty.StringVal(raw)
	}
	return val
}

// loadFiles reads name=path pairs. A bare path is stored under its base name.
func loadFiles(specs []string) (map[string][]byte, error) {
	files := make(map[string][]byte, len(specs))
	for _, spec := range specs {
		name, path, ok := strings.Cut(spec, "=")
		if !ok {
			name, path = filepath.Base(spec), spec
		}
		name = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(name)), "/")
		if name == "" {
			return nil, fmt.Errorf("file %q: empty name", spec)
		}
		data, err := os.ReadFile(normalizePath(path))
		if err != nil {
			return nil, err
		}
		files[name] = data
	}
	return files, nil
}

func loadFonts(paths []string) ([][]byte, error) {
	fonts := make([][]byte, 0, len(paths))
	for _, path := range paths {
		clean := normalizePath(path)
		if err := ensureFont(clean); err != nil {
			return nil, fmt.Errorf("font %s: %w", path, err)
		}
		data, err := os.ReadFile(clean)
		if err != nil {
			return nil, err
		}
		fonts = append(fonts, data)
	}
	return fonts, nil
}

func toStdout(path string) bool {
	return strings.TrimSpace(path) == "-"
}

func writeOutput(path string, stdout io.Writer, data []byte) error {
	if toStdout(path) {
		_, err := stdout.Write(data)
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultOutput
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func ensureFont(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory")
	}
	switch strings.ToLower(filepath.Ext(info.Name())) {
	case ".ttf", ".otf", ".ttc", ".otc":
		return nil
	default:
		return fmt.Errorf("expected a .ttf, .otf, .ttc or .otc font file")
	}
}

func terminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
