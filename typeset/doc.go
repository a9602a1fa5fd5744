// Package typeset is the engine behind dooc: it turns the text of a World's
// main source into a laid-out Document.
//
// Compilation runs in a fixed sequence of passes:
//
//   - the main source is evaluated as an HCL template, so `${sys.inputs.year + 1}`
//     and `%{ for x in sys.inputs.items }` work against the typed inputs held by
//     the world's Library;
//   - the expanded text is NFC-normalized and any leading front matter is
//     split off into document metadata;
//   - the remaining Markdown is parsed with goldmark into blocks and runs;
//   - images are resolved through World.File and fonts through the world's
//     FontBook.
//
// The engine never touches the filesystem. Everything it reads comes through
// the World interface, and failures are reported as hcl.Diagnostics.
//
// Example:
//
//	doc, diags := typeset.Compile(world, typeset.Config{})
//	if diags.HasErrors() {
//		for _, d := range diags {
//			fmt.Println(typeset.Message(d))
//		}
//		return
//	}
//	fmt.Println(doc.Text())
package typeset
