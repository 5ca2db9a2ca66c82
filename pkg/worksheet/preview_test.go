package worksheet

import (
	"image"
	"image/color"
	"testing"
)

func solidTestImage(width, height int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestPreviewPalette_SingleColorImage(t *testing.T) {
	img := solidTestImage(50, 50, color.RGBA{R: 10, G: 200, B: 30, A: 255})

	palette := PreviewPalette(img, 4)

	if len(palette) == 0 {
		t.Fatal("PreviewPalette() returned no entries")
	}
	for i, p := range palette {
		if p.ID != i+1 {
			t.Errorf("palette[%d].ID = %d, want %d", i, p.ID, i+1)
		}
		if p.Hex != hexString(p.RGB) {
			t.Errorf("palette[%d].Hex = %s, inconsistent with RGB %+v", i, p.Hex, p.RGB)
		}
	}
}

func TestPreviewPalette_DownsamplesLargeImages(t *testing.T) {
	img := solidTestImage(1000, 500, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	small := downsampleForPreview(img)
	bounds := small.Bounds()
	if bounds.Dx() > previewMaxEdge || bounds.Dy() > previewMaxEdge {
		t.Errorf("downsampled bounds = %v, want both dims <= %d", bounds, previewMaxEdge)
	}
}

func TestPreviewPalette_SmallImageUnscaled(t *testing.T) {
	img := solidTestImage(10, 10, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	small := downsampleForPreview(img)
	if small.Bounds() != img.Bounds() {
		t.Errorf("small image was rescaled unnecessarily: %v vs %v", small.Bounds(), img.Bounds())
	}
}

func TestPreviewPalette_DefaultsMaxColors(t *testing.T) {
	img := solidTestImage(20, 20, color.RGBA{R: 5, G: 5, B: 5, A: 255})

	palette := PreviewPalette(img, 0)
	if len(palette) == 0 {
		t.Fatal("PreviewPalette() with maxColors=0 should fall back to a default and still return entries")
	}
}
