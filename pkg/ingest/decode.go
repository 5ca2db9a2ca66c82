// Package ingest decodes source images in the formats the worksheet
// pipeline accepts (PNG, JPEG, GIF, BMP, TIFF, WebP) and converts them to
// the flat RGBA byte buffer worksheet.Process requires.
package ingest

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"sync"

	"github.com/deepteams/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var registerOnce sync.Once

// registerFormats wires the additional decoders into the standard
// library's format registry so image.Decode recognizes them alongside the
// built-in PNG/JPEG/GIF support.
func registerFormats() {
	registerOnce.Do(func() {
		image.RegisterFormat("bmp", "BM", bmp.Decode, bmp.DecodeConfig)
		image.RegisterFormat("tiff", "II*\x00", tiff.Decode, tiff.DecodeConfig)
		image.RegisterFormat("tiff", "MM\x00*", tiff.Decode, tiff.DecodeConfig)
		image.RegisterFormat("webp", "RIFF????WEBP", webpDecodeImage, webpDecodeConfig)
	})
}

func webpDecodeImage(r io.Reader) (image.Image, error) {
	return webp.Decode(r)
}

func webpDecodeConfig(r io.Reader) (image.Config, error) {
	return webp.DecodeConfig(r)
}

// Decode reads an image in any registered format and returns it along
// with the format name image.Decode detected.
func Decode(r io.Reader) (image.Image, string, error) {
	registerFormats()
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("ingest: decode image: %w", err)
	}
	return img, format, nil
}

// ToRGBA converts any decoded image to the flat RGBA byte buffer shape
// worksheet.Process requires: width*height*4 bytes, R,G,B,A per pixel in
// row-major order, with the image's origin normalized to (0,0).
func ToRGBA(img image.Image) (pixels []byte, width, height int) {
	bounds := img.Bounds()
	width, height = bounds.Dx(), bounds.Dy()
	pixels = make([]byte, width*height*4)

	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min.X == 0 && rgba.Rect.Min.Y == 0 && rgba.Stride == width*4 {
		copy(pixels, rgba.Pix)
		return pixels, width, height
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			o := (y*width + x) * 4
			pixels[o] = uint8(r >> 8)
			pixels[o+1] = uint8(g >> 8)
			pixels[o+2] = uint8(b >> 8)
			pixels[o+3] = uint8(a >> 8)
		}
	}
	return pixels, width, height
}

// DecodeToRGBA is the common entry point: decode then flatten to RGBA
// bytes, for callers that just want bytes+dimensions to hand to
// worksheet.Process.
func DecodeToRGBA(r io.Reader) (pixels []byte, width, height int, err error) {
	img, _, err := Decode(r)
	if err != nil {
		return nil, 0, 0, err
	}
	pixels, width, height = ToRGBA(img)
	return pixels, width, height, nil
}
