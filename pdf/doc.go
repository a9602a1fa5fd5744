// Package pdf exports typeset documents to PDF.
//
// Export takes a *typeset.Document and returns the PDF bytes. TrueType faces
// chosen by the engine are embedded; roles without one fall back to the core
// Helvetica and Courier fonts, in which case text is limited to
// Windows-1252. Headings become bookmarks, links stay clickable and themes
// control the colors.
//
// Example:
//
//	cfg := pdf.DefaultConfig()
//	cfg.PageSize = "Letter"
//	cfg.PageNumbers = true
//	if theme, ok := pdf.ThemeByName("solarized-light"); ok {
//		cfg.Theme = theme
//	}
//
//	data, err := pdf.Export(doc, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
package pdf
