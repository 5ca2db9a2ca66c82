package worksheet

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/soniakeys/quant/median"
)

// previewMaxEdge bounds the long edge of the downsampled copy PreviewPalette
// quantizes; this keeps the advisory pass fast regardless of the source
// image's resolution.
const previewMaxEdge = 128

// PreviewPalette produces a fast, advisory palette estimate for a host UI
// to show while the real Process call (full-resolution k-means) is still
// running. It downsamples img to at most previewMaxEdge on its long edge
// and runs a median-cut quantizer — a different, cheaper algorithm than
// the spec-mandated k-means core — so it never shares state with, and
// never affects the output of, Process.
func PreviewPalette(img image.Image, maxColors int) []PaletteColor {
	if maxColors <= 0 {
		maxColors = defaultMaxColors
	}

	small := downsampleForPreview(img)

	var q median.Quantizer
	paletted := q.Quantize(small, maxColors)

	palette := make([]PaletteColor, 0, len(paletted.Palette))
	for i, c := range paletted.Palette {
		r, g, b, _ := c.RGBA()
		rgb := RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
		palette = append(palette, PaletteColor{
			ID:        i + 1,
			RGB:       rgb,
			Hex:       hexString(rgb),
			TextColor: textColorFor(rgb),
		})
	}
	return palette
}

// downsampleForPreview scales img so its longer edge is previewMaxEdge,
// preserving aspect ratio. Images already smaller than previewMaxEdge are
// returned unscaled.
func downsampleForPreview(img image.Image) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= previewMaxEdge && h <= previewMaxEdge {
		return img
	}

	var targetW, targetH uint
	if w >= h {
		targetW = previewMaxEdge
		targetH = uint(h * previewMaxEdge / w)
	} else {
		targetH = previewMaxEdge
		targetW = uint(w * previewMaxEdge / h)
	}
	if targetW == 0 {
		targetW = 1
	}
	if targetH == 0 {
		targetH = 1
	}

	return resize.Resize(targetW, targetH, img, resize.Bilinear)
}
