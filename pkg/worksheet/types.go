// Package worksheet implements the image-to-worksheet processor: color
// quantization, connected-component extraction, small-region merging, and
// region finalization. Process is a pure function over an RGBA pixel
// buffer; it owns all scratch state for the duration of one call and
// shares nothing across calls.
package worksheet

// RGB is a byte-valued color in [0,255] per channel.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// PaletteColor is one quantized color surviving into the final output.
type PaletteColor struct {
	// ID is 1-based and unique within the palette, assigned in ascending
	// order of the k-means cluster index it came from.
	ID int `json:"id"`

	RGB RGB `json:"rgb"`

	// Hex is the lowercase "#rrggbb" form of RGB.
	Hex string `json:"hex"`

	// TextColor is "black" or "white", chosen by YIQ luminance so a label
	// drawn in this color stays legible against the swatch.
	TextColor string `json:"textColor"`

	// Count is the total number of pixels across all regions with this
	// color, filled in during emission (stage 6).
	Count int `json:"count"`
}

// Region is a maximal 4-connected set of pixels sharing one quantized
// color, possibly grown by the merger.
type Region struct {
	// ID is unique and densely assigned in extraction order; it never
	// changes after extraction, even if the region later absorbs others.
	ID int `json:"id"`

	// ColorID is the 0-based palette index; the displayed label is
	// ColorID+1, equal to the matching PaletteColor.ID.
	ColorID int `json:"colorId"`

	// Pixels holds this region's flat pixel indices (y*width+x). Ordering
	// is arbitrary but deterministic within a run; it is not scanned for
	// membership tests — regionMap is the source of truth for that.
	Pixels []int `json:"pixels"`

	// Centroid is guaranteed to lie inside the region: regionMap at this
	// coordinate resolves back to this region's ID.
	Centroid Point `json:"centroid"`

	// BorderPixels is the subset of Pixels with at least one 4-neighbor
	// that is out of bounds or belongs to a different region.
	BorderPixels []int `json:"borderPixels"`
}

// Point is an image coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ProcessedImage is the full output of Process: an immutable snapshot of
// the quantized, segmented image. Downstream consumers mutate only a
// separate filled-regions set keyed by region ID; they never write back
// into this structure.
type ProcessedImage struct {
	OriginalWidth  int            `json:"originalWidth"`
	OriginalHeight int            `json:"originalHeight"`
	Regions        []Region       `json:"regions"`
	Palette        []PaletteColor `json:"palette"`

	// PixelData is a verbatim copy of the input RGBA bytes, opaque to the
	// core, carried through for downstream "show original" overlays.
	PixelData []byte `json:"pixelData"`

	// RegionMap is a dense array of length width*height mapping each pixel
	// index to the ID of the region it belongs to. regionMap[p] == r iff
	// p is in regions[r].Pixels, for the region whose ID is r. No pixel is
	// left unassigned in the final output.
	RegionMap []int `json:"regionMap"`
}

// Options configures a single Process call.
type Options struct {
	// MaxColors is the target palette size K. Zero means "use the
	// default" (48, per the external-surface default). Valid range after
	// defaulting is [2,128].
	MaxColors int

	// MinRegionSize overrides the dynamic merge threshold
	// (max(20, pixelCount/40000)) when > 0. Zero means "compute
	// dynamically".
	MinRegionSize int
}

// defaultMaxColors is applied by Process when Options.MaxColors is zero.
const defaultMaxColors = 48

// minAllowedColors and maxAllowedColors bound Options.MaxColors once
// defaulted.
const (
	minAllowedColors = 2
	maxAllowedColors = 128
)

// dynamicMinSize computes the size floor the merger preserves:
// max(20, floor(pixelCount/40000)).
func dynamicMinSize(pixelCount int) int {
	floor := pixelCount / 40000
	if floor < 20 {
		return 20
	}
	return floor
}
