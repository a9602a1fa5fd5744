package typeset

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"github.com/hashicorp/hcl/v2"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// loadImage resolves dest through the world and prepares it for embedding.
// PNG (8-bit, non-interlaced), JPEG and GIF pass through unchanged; every
// other decodable format is transcoded to PNG.
func loadImage(w World, dest, alt string) (*Image, *hcl.Diagnostic) {
	id := NewFileID(dest)
	data, err := w.File(id)
	if err != nil {
		return nil, errorDiagnostic("Missing image", err)
	}
	name := id.VPath().Rootless()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported image format",
			Detail:   fmt.Sprintf("%s: %v", name, err),
		}
	}
	img := &Image{Name: name, Alt: alt, Width: cfg.Width, Height: cfg.Height}
	switch {
	case format == "jpeg":
		img.Format, img.Data = "JPG", data
	case format == "gif":
		img.Format, img.Data = "GIF", data
	case format == "png" && pngEmbeddable(data):
		img.Format, img.Data = "PNG", data
	default:
		out, err := transcodePNG(data)
		if err != nil {
			return nil, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid image",
				Detail:   fmt.Sprintf("%s: %v", name, err),
			}
		}
		img.Format, img.Data = "PNG", out
	}
	return img, nil
}

// pngEmbeddable reports whether a PNG can be embedded without re-encoding:
// PDF readers need bit depth of at most 8 and no interlacing.
func pngEmbeddable(data []byte) bool {
	const (
		bitDepthOffset  = 24
		interlaceOffset = 28
	)
	if len(data) <= interlaceOffset {
		return false
	}
	return data[bitDepthOffset] <= 8 && data[interlaceOffset] == 0
}

func transcodePNG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	dst := image.NewNRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
