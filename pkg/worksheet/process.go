package worksheet

import "context"

// maxReasonablePixels bounds a single Process call's pixel count; past
// this, the scratch buffers (visited bitmap, flood-fill stack, k-means
// accumulators) are judged unsafe to allocate in one shot on a
// constrained device (spec §7's AllocationFailure).
const maxReasonablePixels = 1 << 28 // 268M pixels (~1GB of RGBA)

// Process converts an RGBA pixel buffer into a ProcessedImage: quantize,
// extract regions, merge small ones, finalize borders/centroids/anchors,
// and emit palette counts. Stages run strictly in order 1->6; ctx is
// checked between stages, the pipeline's single suspension point (spec
// §5) — no partial ProcessedImage is ever returned.
func Process(ctx context.Context, pixels []byte, width, height int, opts Options) (*ProcessedImage, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, newError(KindInvalidDimensions, "width/height must be positive and pixels must be width*height*4 bytes", nil)
	}

	maxColors := opts.MaxColors
	if maxColors == 0 {
		maxColors = defaultMaxColors
	}
	if maxColors < minAllowedColors || maxColors > maxAllowedColors {
		return nil, newError(KindInvalidK, "maxColors must be in [2,128] after defaulting", nil)
	}

	pixelCount := width * height
	if pixelCount > maxReasonablePixels {
		return nil, newError(KindAllocationFailure, "image too large for a single-call scratch allocation", nil)
	}

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	rgb := unpackRGB(pixels, pixelCount)

	// Stage 1: quantize
	centroids, assignments := kmeansRGB(rgb, maxColors)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Stage 2: compact palette
	palette, colorID := compactPalette(centroids, assignments)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Stage 3: extract regions
	regions, regionMap := extractRegions(colorID, width, height)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Stage 4: merge small regions
	minSize := opts.MinRegionSize
	if minSize <= 0 {
		minSize = dynamicMinSize(pixelCount)
	}
	regions = mergeSmallRegions(regions, regionMap, palette, width, height, minSize)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Stage 5: finalize borders, centroids, anchors
	finalizeRegions(regions, regionMap, width, height)

	if err := checkCancelled(ctx); err != nil {
		return nil, err
	}

	// Stage 6: emit - update palette pixel counts, copy pixel buffer
	emitCounts(regions, palette)

	pixelDataCopy := make([]byte, len(pixels))
	copy(pixelDataCopy, pixels)

	return &ProcessedImage{
		OriginalWidth:  width,
		OriginalHeight: height,
		Regions:        regions,
		Palette:        palette,
		PixelData:      pixelDataCopy,
		RegionMap:      regionMap,
	}, nil
}

// checkCancelled reports ctx.Err() as a *Error of KindCancelled, or nil if
// ctx is still live. It is the pipeline's only suspension point (spec §5);
// every call site sits strictly between two stages, never mid-stage.
func checkCancelled(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return newError(KindCancelled, "context cancelled", ctx.Err())
	default:
		return nil
	}
}

// unpackRGB drops the alpha channel and returns one RGB struct per pixel
// in row-major order.
func unpackRGB(pixels []byte, pixelCount int) []RGB {
	out := make([]RGB, pixelCount)
	for i := 0; i < pixelCount; i++ {
		o := i * 4
		out[i] = RGB{R: pixels[o], G: pixels[o+1], B: pixels[o+2]}
	}
	return out
}

// emitCounts sums each region's pixel count into its palette color's
// Count field (spec §4.6). Palette is mutated in place.
func emitCounts(regions []Region, palette []PaletteColor) {
	for i := range palette {
		palette[i].Count = 0
	}
	for _, r := range regions {
		palette[r.ColorID].Count += len(r.Pixels)
	}
}
