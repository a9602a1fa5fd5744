// Package dooc compiles templated Markdown to PDF entirely in memory.
//
// A compilation takes four inputs: the document source, a set of typed named
// inputs, a table of virtual files and a list of font binaries. They are
// frozen into a World, the engine in package typeset lays the source out
// while querying that World, and package pdf turns the result into bytes.
// Nothing touches the filesystem or the network, and nothing is kept between
// compilations.
//
// Core properties:
//   - Inputs keep their types: `${sys.inputs.year + 1}` is arithmetic
//   - Virtual files are looked up by their exact root-relative path
//   - Every face of a font collection is available to the engine
//   - Either PDF bytes or an error are returned, never both
//
// Example:
//
//	src := "# Report ${sys.inputs.year}\n\n![logo](logo.png)\n"
//	data, err := dooc.Compile(src,
//		map[string]cty.Value{"year": cty.NumberIntVal(2025)},
//		map[string][]byte{"logo.png": logo},
//		[][]byte{goregular.TTF},
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Layout can be tuned with Options such as WithPageSize and WithTheme.
package dooc
