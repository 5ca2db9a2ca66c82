package worksheet

// centroidSampleDivisor controls how sparsely finalizeRegion samples a
// large region's pixels when searching for an inside-region anchor
// (spec §4.5): every max(1, size/centroidSampleDivisor)-th pixel is
// checked instead of all of them.
const centroidSampleDivisor = 100

// finalizeRegions computes border pixels, the raw centroid, and an
// inside-region label anchor for every surviving region (spec §4.5),
// mutating each Region in place.
func finalizeRegions(regions []Region, regionMap []int, width, height int) {
	for i := range regions {
		finalizeRegion(&regions[i], regionMap, width, height)
	}
}

func finalizeRegion(r *Region, regionMap []int, width, height int) {
	r.BorderPixels = computeBorder(r, regionMap, width, height)

	cx, cy := rawCentroid(r.Pixels, width)
	if regionMap[cy*width+cx] == r.ID {
		r.Centroid = Point{X: cx, Y: cy}
		return
	}

	r.Centroid = nearestInsideRegion(r, cx, cy, width)
}

// computeBorder returns the subset of r.Pixels with at least one 4-neighbor
// out of bounds or belonging to a different region.
func computeBorder(r *Region, regionMap []int, width, height int) []int {
	border := make([]int, 0, len(r.Pixels))
	var nbs [4]int
	for _, p := range r.Pixels {
		x, y := p%width, p/width
		isBorder := x == 0 || x == width-1 || y == 0 || y == height-1
		if !isBorder {
			count := neighbors4(x, y, width, height, &nbs)
			for i := 0; i < count; i++ {
				if regionMap[nbs[i]] != r.ID {
					isBorder = true
					break
				}
			}
		}
		if isBorder {
			border = append(border, p)
		}
	}
	return border
}

// rawCentroid is the arithmetic mean of pixel coordinates, rounded.
func rawCentroid(pixels []int, width int) (int, int) {
	var sumX, sumY int64
	for _, p := range pixels {
		sumX += int64(p % width)
		sumY += int64(p / width)
	}
	n := int64(len(pixels))
	cx := int((sumX + n/2) / n)
	cy := int((sumY + n/2) / n)
	return cx, cy
}

// nearestInsideRegion finds the region-internal pixel whose squared
// distance to (cx,cy) is minimal. Large regions are sampled every
// max(1, size/centroidSampleDivisor)-th pixel, trading exactness for a
// bounded cost, as permitted by spec §4.5.
func nearestInsideRegion(r *Region, cx, cy, width int) Point {
	step := len(r.Pixels) / centroidSampleDivisor
	if step < 1 {
		step = 1
	}

	bestIdx := r.Pixels[0]
	bestDist := sqDistPoint(bestIdx, cx, cy, width)
	for i := 0; i < len(r.Pixels); i += step {
		p := r.Pixels[i]
		d := sqDistPoint(p, cx, cy, width)
		if d < bestDist {
			bestDist = d
			bestIdx = p
		}
	}

	return Point{X: bestIdx % width, Y: bestIdx / width}
}

func sqDistPoint(p, cx, cy, width int) int64 {
	dx := int64(p%width) - int64(cx)
	dy := int64(p/width) - int64(cy)
	return dx*dx + dy*dy
}
