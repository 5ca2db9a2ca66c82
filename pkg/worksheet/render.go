package worksheet

import (
	"image"
	"image/color"
)

// borderColor is the outline drawn around every region regardless of fill
// state, matching a printed color-by-numbers sheet's black line art.
var borderColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}

// unfilledColor is the background of a region the caller hasn't filled in
// yet.
var unfilledColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Render draws img as a worksheet preview: unfilled regions appear white,
// filled regions (identified by region ID in filledRegions) are painted
// with their palette color, and every region's border pixels are drawn in
// black. No number labels are drawn.
// This is a read-only view over a ProcessedImage; it never mutates img.
func Render(img *ProcessedImage, filledRegions map[int]bool) image.Image {
	out := image.NewRGBA(image.Rect(0, 0, img.OriginalWidth, img.OriginalHeight))

	fillColor := make(map[int]color.RGBA, len(img.Regions))
	for _, r := range img.Regions {
		c := unfilledColor
		if filledRegions[r.ID] {
			pc := paletteByID(img.Palette, r.ColorID+1)
			if pc != nil {
				c = color.RGBA{R: pc.RGB.R, G: pc.RGB.G, B: pc.RGB.B, A: 255}
			}
		}
		fillColor[r.ID] = c
	}

	for p := 0; p < len(img.RegionMap); p++ {
		x := p % img.OriginalWidth
		y := p / img.OriginalWidth
		regionID := img.RegionMap[p]
		out.Set(x, y, fillColor[regionID])
	}

	for _, r := range img.Regions {
		for _, p := range r.BorderPixels {
			x := p % img.OriginalWidth
			y := p / img.OriginalWidth
			out.Set(x, y, borderColor)
		}
	}

	return out
}

func paletteByID(palette []PaletteColor, id int) *PaletteColor {
	for i := range palette {
		if palette[i].ID == id {
			return &palette[i]
		}
	}
	return nil
}
